package forms

import (
	"net/url"

	"vodadmin/internal/api"
)

type accountForm struct {
	Email    string `validate:"required"`
	Password string `validate:"required_if=Creating true"`
	Creating bool
}

// Account builds an account body. The password is mandatory only when
// creating; on update an empty one is left out.
func Account(values url.Values, creating bool) (api.AccountPayload, error) {
	f := accountForm{
		Email:    text(values, "email"),
		Password: text(values, "password"),
		Creating: creating,
	}
	err := check(f, map[string]string{
		"Email":    "Vui lòng nhập email",
		"Password": "Vui lòng nhập mật khẩu khi thêm mới",
	})
	if err != nil {
		return api.AccountPayload{}, err
	}
	role := text(values, "role")
	if role == "" {
		role = "user"
	}
	return api.AccountPayload{Email: f.Email, Role: role, Password: f.Password}, nil
}

type nameForm struct {
	Name string `validate:"required"`
}

func requiredName(values url.Values, key, message string) (string, error) {
	f := nameForm{Name: text(values, key)}
	if err := check(f, map[string]string{"Name": message}); err != nil {
		return "", err
	}
	return f.Name, nil
}

func Actor(values url.Values) (api.ActorPayload, error) {
	name, err := requiredName(values, "actor_name", "Vui lòng nhập tên diễn viên")
	if err != nil {
		return api.ActorPayload{}, err
	}
	gender := text(values, "actor_gender")
	if gender == "" {
		gender = "Nam"
	}
	return api.ActorPayload{Name: name, Gender: gender, Avatar: text(values, "actor_avatar")}, nil
}

func Genre(values url.Values) (api.GenrePayload, error) {
	name, err := requiredName(values, "genre_name", "Vui lòng nhập tên thể loại")
	return api.GenrePayload{Name: name}, err
}

func Country(values url.Values) (api.CountryPayload, error) {
	name, err := requiredName(values, "country_name", "Vui lòng nhập tên quốc gia")
	return api.CountryPayload{Name: name}, err
}

func PosterType(values url.Values) (api.PosterTypePayload, error) {
	name, err := requiredName(values, "postertype_name", "Vui lòng nhập tên loại poster")
	return api.PosterTypePayload{Name: name}, err
}

func Resolution(values url.Values) (api.ResolutionPayload, error) {
	name, err := requiredName(values, "resolution_type", "Vui lòng nhập độ phân giải")
	return api.ResolutionPayload{Type: name}, err
}

func Profile(values url.Values) (api.ProfilePayload, error) {
	name, err := requiredName(values, "profile_name", "Vui lòng nhập tên hồ sơ")
	if err != nil {
		return api.ProfilePayload{}, err
	}
	return api.ProfilePayload{
		Name:      name,
		AvatarURL: text(values, "avatar_url"),
		AccountID: text(values, "account_id"),
	}, nil
}
