package model

// ユーザー。emailが一意キー（照合は大文字小文字を無視）。削除はしない。
type User struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Address string  `json:"address"`
	Orders  []int64 `json:"orders"`
	IsAdmin bool    `json:"is_admin"`

	// 0 = 会員プランなし
	MembershipID int64 `json:"membership_id,omitempty"`

	// salt+導出ハッシュ（hex）。旧形式の平文Passwordは初回利用時に移行される。
	PasswordHash string `json:"password_hash,omitempty"`
	Salt         string `json:"salt,omitempty"`
	Password     string `json:"password,omitempty"`
}

func (u User) HasMembership() bool {
	return u.MembershipID > 0
}

// 新形式の認証情報を持つか
func (u User) HasHashedPassword() bool {
	return u.PasswordHash != "" && u.Salt != ""
}
