package consts

// 帖子分类
const (
	CategoryNews      = "news"
	CategoryReview    = "review"
	CategoryPodcast   = "podcast"
	CategoryOpinion   = "opinion"
	CategoryLifestyle = "lifestyle"

	// CategoryAll 列表筛选的哨兵值，等价于不筛选
	CategoryAll = "all"
)

var Categories = []string{
	CategoryNews,
	CategoryReview,
	CategoryPodcast,
	CategoryOpinion,
	CategoryLifestyle,
}

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

const (
	ImageObjectPrefix = "posts/"

	// MaxImageSize 上传图片大小上限 50MB
	MaxImageSize = 50 << 20
)

var AllowedImageMimes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
}
