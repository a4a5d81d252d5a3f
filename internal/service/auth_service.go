package service

import (
	"fmt"
	"strings"

	"github.com/yousseftayari/ElectroDoc/internal/dto"
	"github.com/yousseftayari/ElectroDoc/internal/model"
	"github.com/yousseftayari/ElectroDoc/internal/repository"
	"github.com/yousseftayari/ElectroDoc/internal/utils"
)

type AuthService interface {
	Register(req dto.RegisterReq) (uint, error)
	Login(req dto.LoginReq) (*dto.LoginResp, error)
}

type authService struct {
	repo repository.UserRepository
}

func NewAuthService(repo repository.UserRepository) AuthService {
	return &authService{repo: repo}
}

// Register 注册业务逻辑：不自动登录
func (s *authService) Register(req dto.RegisterReq) (uint, error) {
	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)

	// 1. 空值校验
	if username == "" || password == "" {
		return 0, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	// 2. 业务检查：用户名是否存在
	if s.repo.IsUsernameExist(username) {
		return 0, fmt.Errorf("%w: username already taken", ErrConflict)
	}

	// 3. 密码加密
	hash, err := utils.HashPassword(password)
	if err != nil {
		return 0, err
	}

	// 4. 落库
	user := &model.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.repo.Create(user); err != nil {
		return 0, err
	}

	return user.ID, nil
}

// Login 登录业务逻辑
// 用户不存在和密码错误返回同一个 ErrAuth，不向客户端泄露区别
func (s *authService) Login(req dto.LoginReq) (*dto.LoginResp, error) {
	username := strings.TrimSpace(req.Username)

	// 1. 查用户
	user, err := s.repo.GetByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid username or password", ErrAuth)
	}

	// 2. 比对密码
	if !utils.CheckPasswordHash(strings.TrimSpace(req.Password), user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid username or password", ErrAuth)
	}

	// Session 写入由 Handler 完成，这里只返回身份信息
	return &dto.LoginResp{
		Username: user.Username,
		UserID:   user.ID,
	}, nil
}
