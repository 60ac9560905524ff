package usecase

import "github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/domain/model"

// 対話セッションの状態。グローバル変数ではなく明示的に引き回す。
type Session struct {
	User *model.User
}

func (s *Session) LoggedIn() bool {
	return s != nil && s.User != nil
}

func (s *Session) IsAdmin() bool {
	return s.LoggedIn() && s.User.IsAdmin
}

// 未ログインなら空文字
func (s *Session) Email() string {
	if !s.LoggedIn() {
		return ""
	}
	return s.User.Email
}

func (s *Session) Name() string {
	if !s.LoggedIn() {
		return ""
	}
	return s.User.Name
}

func (s *Session) SetUser(u model.User) {
	s.User = &u
}

func (s *Session) Clear() {
	s.User = nil
}
