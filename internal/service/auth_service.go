package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"campus-event/backend/internal/dto"
	"campus-event/backend/internal/model"
	"campus-event/backend/internal/repository"
	"campus-event/backend/pkg/jwt"
	"campus-event/backend/pkg/redis"
)

// ── 认证模块业务错误 ──

var (
	// ErrUserExists 用户名或邮箱已被占用
	ErrUserExists = errors.New("用户名或邮箱已存在")
	// ErrInvalidCredentials 用户名或密码错误
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	// ErrUserDisabled 账号已停用
	ErrUserDisabled = errors.New("账号已停用")
	// ErrInvalidRefreshToken 刷新令牌无效或已失效
	ErrInvalidRefreshToken = errors.New("刷新令牌无效")
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = errors.New("用户不存在")
)

// AuthService 认证服务：注册/登录/刷新/登出
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	// Logout 将当前 access token 加入黑名单直至其自然过期
	Logout(ctx context.Context, claims *jwt.Claims) error
	// Me 当前登录用户信息
	Me(ctx context.Context, userID string) (*model.User, error)
}

type authService struct {
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) AuthService {
	return &authService{repo: repo, jwtMgr: jwtMgr, rdb: rdb, logger: logger}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*model.User, error) {
	if _, err := s.repo.User.GetByUsername(ctx, req.Username); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         model.RoleStudent,
		IsActive:     true,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		s.logger.Error("用户注册失败", zap.String("username", req.Username), zap.Error(err))
		return nil, err
	}

	s.logger.Info("用户注册成功",
		zap.String("user_id", user.UserID),
		zap.String("username", user.Username))
	return user, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.repo.User.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserDisabled
	}

	return s.issueTokens(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil || claims.TokenType != "refresh" {
		return nil, ErrInvalidRefreshToken
	}

	if s.rdb != nil {
		blacklisted, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("黑名单查询失败，按有效处理", zap.Error(err))
		} else if blacklisted {
			return nil, ErrInvalidRefreshToken
		}
	}

	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	if !user.IsActive {
		return nil, ErrUserDisabled
	}

	// 旧的 refresh token 作废，防止重复换发
	if s.rdb != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if err := s.rdb.BlacklistToken(ctx, claims.ID, ttl); err != nil {
			s.logger.Warn("刷新令牌作废失败", zap.Error(err))
		}
	}

	return s.issueTokens(user)
}

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.rdb == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.rdb.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("登出失败", zap.String("user_id", claims.UserID), zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) Me(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) issueTokens(user *model.User) (*dto.TokenResponse, error) {
	access, err := s.jwtMgr.GenerateAccessToken(user.UserID, user.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtMgr.GenerateRefreshToken(user.UserID, user.Role)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
	}, nil
}
