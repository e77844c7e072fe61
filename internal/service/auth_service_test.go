package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"campus-event/backend/config"
	"campus-event/backend/internal/dto"
	"campus-event/backend/internal/model"
	"campus-event/backend/pkg/jwt"
)

func setupTestAuthService() (AuthService, *testRepos) {
	repos := newTestRepos()
	jwtMgr := jwt.NewManager(&config.AuthConfig{
		JWTSecret:       "test-secret-for-unit-tests",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	})
	svc := NewAuthService(repos.toRepository(), jwtMgr, nil, zap.NewNop())
	return svc, repos
}

func registerRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Username: "zhangsan",
		Email:    "zhangsan@example.edu.cn",
		Password: "s3cret-pass",
	}
}

// ════════════════════════════════════════════════════════════
// 注册 / 登录测试
// ════════════════════════════════════════════════════════════

func TestAuthService_Register(t *testing.T) {
	svc, _ := setupTestAuthService()

	user, err := svc.Register(context.Background(), registerRequest())
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if user.Role != model.RoleStudent {
		t.Errorf("新用户默认角色应为学生，实际: %s", user.Role)
	}
	if !user.IsActive {
		t.Error("新用户应为启用状态")
	}
	if user.PasswordHash == "s3cret-pass" {
		t.Error("密码不应明文存储")
	}

	// 用户名重复
	if _, err := svc.Register(context.Background(), registerRequest()); !errors.Is(err, ErrUserExists) {
		t.Errorf("重复注册期望 ErrUserExists，实际: %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	svc, _ := setupTestAuthService()
	if _, err := svc.Register(context.Background(), registerRequest()); err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	tokens, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "zhangsan", Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Error("登录应返回访问令牌与刷新令牌")
	}
	if tokens.TokenType != "Bearer" {
		t.Errorf("令牌类型应为 Bearer，实际: %s", tokens.TokenType)
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc, _ := setupTestAuthService()
	if _, err := svc.Register(context.Background(), registerRequest()); err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "zhangsan", Password: "wrong-pass",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("密码错误期望 ErrInvalidCredentials，实际: %v", err)
	}

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Username: "nonexistent", Password: "s3cret-pass",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("用户不存在期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_Login_Disabled(t *testing.T) {
	svc, repos := setupTestAuthService()
	user, err := svc.Register(context.Background(), registerRequest())
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	repos.user.users[user.UserID].IsActive = false

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Username: "zhangsan", Password: "s3cret-pass",
	})
	if !errors.Is(err, ErrUserDisabled) {
		t.Errorf("停用账号期望 ErrUserDisabled，实际: %v", err)
	}
}

// ════════════════════════════════════════════════════════════
// 刷新令牌测试
// ════════════════════════════════════════════════════════════

func TestAuthService_Refresh(t *testing.T) {
	svc, _ := setupTestAuthService()
	if _, err := svc.Register(context.Background(), registerRequest()); err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	tokens, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "zhangsan", Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}

	renewed, err := svc.Refresh(context.Background(), tokens.RefreshToken)
	if err != nil {
		t.Fatalf("刷新失败: %v", err)
	}
	if renewed.AccessToken == "" || renewed.RefreshToken == "" {
		t.Error("刷新应换发完整令牌对")
	}
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	svc, _ := setupTestAuthService()
	if _, err := svc.Register(context.Background(), registerRequest()); err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	tokens, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "zhangsan", Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}

	// access token 不能用于刷新
	if _, err := svc.Refresh(context.Background(), tokens.AccessToken); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("期望 ErrInvalidRefreshToken，实际: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), "not-a-token"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("非法令牌期望 ErrInvalidRefreshToken，实际: %v", err)
	}
}
