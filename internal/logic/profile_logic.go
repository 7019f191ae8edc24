package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/sambutracy/filterfund/internal/model"
	"github.com/sambutracy/filterfund/internal/store"
)

// 周边实体的错误类型
var (
	ErrAlreadyExists = errors.New("记录已存在")
	ErrNotFound      = errors.New("记录不存在")
)

// ProfileLogic 用户资料业务逻辑，按账户地址单独拥有
type ProfileLogic struct {
	profiles store.Store[string, model.UserProfile]
}

// NewProfileLogic 创建用户资料业务逻辑
func NewProfileLogic(profiles store.Store[string, model.UserProfile]) *ProfileLogic {
	return &ProfileLogic{profiles: profiles}
}

// ProfileInput 用户资料入参
type ProfileInput struct {
	Username    string   `json:"username" binding:"required"`
	Email       string   `json:"email"`
	Bio         string   `json:"bio"`
	AvatarUrl   string   `json:"avatar_url"`
	SocialLinks []string `json:"social_links"`
}

// CreateProfile 创建用户资料，地址已注册时失败
func (p *ProfileLogic) CreateProfile(address string, in ProfileInput) error {
	_, ok, err := p.profiles.Get(address)
	if err != nil {
		return fmt.Errorf("读取用户资料失败: %w", err)
	}
	if ok {
		return ErrAlreadyExists
	}

	profile := model.UserProfile{
		Address:        address,
		Username:       in.Username,
		Email:          in.Email,
		Bio:            in.Bio,
		AvatarUrl:      in.AvatarUrl,
		SocialLinks:    in.SocialLinks,
		Created:        time.Now(),
		TotalDonations: model.NewAmount(0),
	}
	return p.profiles.Insert(address, profile)
}

// GetProfile 读取用户资料
func (p *ProfileLogic) GetProfile(address string) (model.UserProfile, error) {
	profile, ok, err := p.profiles.Get(address)
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("读取用户资料失败: %w", err)
	}
	if !ok {
		return model.UserProfile{}, ErrNotFound
	}
	return profile, nil
}

// UpdateProfile 更新用户资料，地址未注册时失败
func (p *ProfileLogic) UpdateProfile(address string, in ProfileInput) error {
	profile, ok, err := p.profiles.Get(address)
	if err != nil {
		return fmt.Errorf("读取用户资料失败: %w", err)
	}
	if !ok {
		return ErrNotFound
	}

	profile.Username = in.Username
	profile.Email = in.Email
	profile.Bio = in.Bio
	profile.AvatarUrl = in.AvatarUrl
	profile.SocialLinks = in.SocialLinks

	return p.profiles.Insert(address, profile)
}

// UpdateStats 累加用户统计信息
func (p *ProfileLogic) UpdateStats(address string, campaignsCreated uint64, donated model.Amount) error {
	profile, ok, err := p.profiles.Get(address)
	if err != nil {
		return fmt.Errorf("读取用户资料失败: %w", err)
	}
	if !ok {
		return ErrNotFound
	}

	profile.CampaignsCreated += campaignsCreated
	profile.TotalDonations = profile.TotalDonations.Add(donated)

	return p.profiles.Insert(address, profile)
}

// DeleteProfile 删除用户资料，地址未注册时失败
func (p *ProfileLogic) DeleteProfile(address string) error {
	if err := p.profiles.Remove(address); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("删除用户资料失败: %w", err)
	}
	return nil
}
