package util

import (
	"Gazette/internal/pkg/consts"
	"bytes"
	"errors"
	"io"
	"slices"

	"github.com/gabriel-vasile/mimetype"
)

var ErrImageType = errors.New("unsupported image type")

// sniffLimit mimetype 判定图片只需要文件头
const sniffLimit = 3072

// SniffImage 按文件内容判定 MIME 类型，只接受白名单内的图片；
// 返回的 Reader 会重新拼上已读取的文件头
func SniffImage(r io.Reader) (string, io.Reader, error) {
	head := make([]byte, sniffLimit)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", nil, err
	}
	head = head[:n]

	mime := mimetype.Detect(head)
	for m := mime; m != nil; m = m.Parent() {
		if slices.Contains(consts.AllowedImageMimes, m.String()) {
			return m.String(), io.MultiReader(bytes.NewReader(head), r), nil
		}
	}
	return "", nil, ErrImageType
}
