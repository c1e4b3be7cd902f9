package service

import (
	"Gazette/internal/api/dto"
	"Gazette/internal/model"
	"Gazette/internal/pkg/ranking"

	"github.com/jinzhu/copier"
)

func toPostDTO(post *model.Post, images ImageStore) (*dto.PostDTO, error) {
	postDTO := &dto.PostDTO{}
	if err := copier.Copy(postDTO, post); err != nil {
		return nil, err
	}
	postDTO.Author = dto.AuthorDTO{ID: post.User.ID, Name: post.User.Name}
	if post.Image != nil && *post.Image != "" && images != nil {
		url := images.PublicURL(*post.Image)
		postDTO.ImageURL = &url
	}
	return postDTO, nil
}

func withEngagement(postDTO *dto.PostDTO, entry ranking.Entry) {
	likes, comments := entry.Likes, entry.Comments
	postDTO.LikeCount = &likes
	postDTO.CommentCount = &comments
}

func toCommentDTO(comment *model.Comment) (*dto.CommentDTO, error) {
	commentDTO := &dto.CommentDTO{}
	if err := copier.Copy(commentDTO, comment); err != nil {
		return nil, err
	}
	commentDTO.Author = dto.AuthorDTO{ID: comment.User.ID, Name: comment.User.Name}
	return commentDTO, nil
}
