package web

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"vodadmin/internal/api"
	"vodadmin/internal/catalog"
	"vodadmin/internal/forms"
)

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

func nameField(name, label string) field {
	return field{Name: name, Label: label, Type: "text"}
}

func (s *Server) catalogResources() []*resource {
	return []*resource{
		accountsResource(),
		actorsResource(),
		genresResource(),
		countriesResource(),
		posterTypesResource(),
		resolutionsResource(),
		profilesResource(),
	}
}

func accountsResource() *resource {
	return &resource{
		Path:    "accounts",
		Title:   "Quản lý tài khoản",
		Noun:    "tài khoản",
		Columns: []string{"ID", "Email", "Vai trò", "Premium", "Ngày tạo"},
		Fields: []field{
			{Name: "email", Label: "Email", Type: "email"},
			{Name: "password", Label: "Mật khẩu", Type: "password", CreateOnly: true,
				Placeholder: "Để trống nếu không đổi"},
			{Name: "role", Label: "Vai trò", Type: "select", Options: []option{
				{Value: "user", Label: "User"},
				{Value: "admin", Label: "Admin"},
			}},
		},
		list: func(ctx context.Context, s *Server, r *http.Request, _ string) ([]row, error) {
			accounts, err := s.client(r).ListAccounts(ctx)
			if err != nil {
				return nil, err
			}
			rows := make([]row, 0, len(accounts))
			for _, a := range accounts {
				rows = append(rows, row{
					ID:     a.ID,
					Label:  a.Email,
					Cells:  []string{itoa(a.ID), a.Email, a.Role, yesno(a.IsPremium), a.CreatedAt},
					Values: map[string]string{"email": a.Email, "role": a.Role},
					Links: []link{{
						Href: fmt.Sprintf("/accounts/%d/payments", a.ID),
						Text: "Lịch sử thanh toán",
					}},
				})
			}
			return rows, nil
		},
		create: func(ctx context.Context, s *Server, r *http.Request, v url.Values) error {
			p, err := forms.Account(v, true)
			if err != nil {
				return err
			}
			return s.client(r).CreateAccount(ctx, p)
		},
		update: func(ctx context.Context, s *Server, r *http.Request, accountID int64, v url.Values) error {
			p, err := forms.Account(v, false)
			if err != nil {
				return err
			}
			return s.client(r).UpdateAccount(ctx, accountID, p)
		},
		remove: func(ctx context.Context, s *Server, r *http.Request, accountID int64) error {
			return s.client(r).DeleteAccount(ctx, accountID)
		},
	}
}

func actorsResource() *resource {
	return &resource{
		Path:    "actors",
		Title:   "Quản lý diễn viên",
		Noun:    "diễn viên",
		Search:  true,
		Kind:    catalog.KindActors,
		Columns: []string{"ID", "Tên diễn viên", "Giới tính", "Ảnh đại diện"},
		Fields: []field{
			nameField("actor_name", "Tên diễn viên"),
			{Name: "actor_gender", Label: "Giới tính", Type: "select", Options: []option{
				{Value: "Nam", Label: "Nam"},
				{Value: "Nữ", Label: "Nữ"},
				{Value: "Khác", Label: "Khác"},
			}},
			{Name: "actor_avatar", Label: "Ảnh đại diện (URL)", Type: "url"},
		},
		list: func(ctx context.Context, s *Server, r *http.Request, q string) ([]row, error) {
			c := s.client(r)
			var (
				actors []api.Actor
				err    error
			)
			if q != "" {
				actors, err = c.SearchActors(ctx, q)
			} else {
				actors, err = c.ListActors(ctx)
			}
			if err != nil {
				return nil, err
			}
			rows := make([]row, 0, len(actors))
			for _, a := range actors {
				rows = append(rows, row{
					ID:    a.ID,
					Label: a.Name,
					Cells: []string{itoa(a.ID), a.Name, a.Gender, a.Avatar},
					Values: map[string]string{
						"actor_name":   a.Name,
						"actor_gender": a.Gender,
						"actor_avatar": a.Avatar,
					},
				})
			}
			return rows, nil
		},
		create: func(ctx context.Context, s *Server, r *http.Request, v url.Values) error {
			p, err := forms.Actor(v)
			if err != nil {
				return err
			}
			return s.client(r).CreateActor(ctx, p)
		},
		update: func(ctx context.Context, s *Server, r *http.Request, actorID int64, v url.Values) error {
			p, err := forms.Actor(v)
			if err != nil {
				return err
			}
			return s.client(r).UpdateActor(ctx, actorID, p)
		},
		remove: func(ctx context.Context, s *Server, r *http.Request, actorID int64) error {
			return s.client(r).DeleteActor(ctx, actorID)
		},
	}
}

func genresResource() *resource {
	return &resource{
		Path:    "genres",
		Title:   "Quản lý thể loại",
		Noun:    "thể loại",
		Search:  true,
		Kind:    catalog.KindGenres,
		Columns: []string{"ID", "Tên thể loại"},
		Fields:  []field{nameField("genre_name", "Tên thể loại")},
		list: func(ctx context.Context, s *Server, r *http.Request, q string) ([]row, error) {
			c := s.client(r)
			var (
				genres []api.Genre
				err    error
			)
			if q != "" {
				genres, err = c.SearchGenres(ctx, q)
			} else {
				genres, err = c.ListGenres(ctx)
			}
			if err != nil {
				return nil, err
			}
			rows := make([]row, 0, len(genres))
			for _, g := range genres {
				rows = append(rows, row{
					ID: g.ID, Label: g.Name,
					Cells:  []string{itoa(g.ID), g.Name},
					Values: map[string]string{"genre_name": g.Name},
				})
			}
			return rows, nil
		},
		create: func(ctx context.Context, s *Server, r *http.Request, v url.Values) error {
			p, err := forms.Genre(v)
			if err != nil {
				return err
			}
			return s.client(r).CreateGenre(ctx, p)
		},
		update: func(ctx context.Context, s *Server, r *http.Request, genreID int64, v url.Values) error {
			p, err := forms.Genre(v)
			if err != nil {
				return err
			}
			return s.client(r).UpdateGenre(ctx, genreID, p)
		},
		remove: func(ctx context.Context, s *Server, r *http.Request, genreID int64) error {
			return s.client(r).DeleteGenre(ctx, genreID)
		},
	}
}

func countriesResource() *resource {
	return &resource{
		Path:    "countries",
		Title:   "Quản lý quốc gia",
		Noun:    "quốc gia",
		Search:  true,
		Kind:    catalog.KindCountries,
		Columns: []string{"ID", "Tên quốc gia"},
		Fields:  []field{nameField("country_name", "Tên quốc gia")},
		list: func(ctx context.Context, s *Server, r *http.Request, q string) ([]row, error) {
			c := s.client(r)
			var (
				countries []api.Country
				err       error
			)
			if q != "" {
				countries, err = c.SearchCountries(ctx, q)
			} else {
				countries, err = c.ListCountries(ctx)
			}
			if err != nil {
				return nil, err
			}
			rows := make([]row, 0, len(countries))
			for _, co := range countries {
				rows = append(rows, row{
					ID: co.ID, Label: co.Name,
					Cells:  []string{itoa(co.ID), co.Name},
					Values: map[string]string{"country_name": co.Name},
				})
			}
			return rows, nil
		},
		create: func(ctx context.Context, s *Server, r *http.Request, v url.Values) error {
			p, err := forms.Country(v)
			if err != nil {
				return err
			}
			return s.client(r).CreateCountry(ctx, p)
		},
		update: func(ctx context.Context, s *Server, r *http.Request, countryID int64, v url.Values) error {
			p, err := forms.Country(v)
			if err != nil {
				return err
			}
			return s.client(r).UpdateCountry(ctx, countryID, p)
		},
		remove: func(ctx context.Context, s *Server, r *http.Request, countryID int64) error {
			return s.client(r).DeleteCountry(ctx, countryID)
		},
	}
}

func posterTypesResource() *resource {
	return &resource{
		Path:    "postertypes",
		Title:   "Quản lý loại poster",
		Noun:    "loại poster",
		Kind:    catalog.KindPosterTypes,
		Columns: []string{"ID", "Tên loại poster"},
		Fields:  []field{nameField("postertype_name", "Tên loại poster")},
		list: func(ctx context.Context, s *Server, r *http.Request, _ string) ([]row, error) {
			types, err := s.client(r).ListPosterTypes(ctx)
			if err != nil {
				return nil, err
			}
			rows := make([]row, 0, len(types))
			for _, t := range types {
				rows = append(rows, row{
					ID: t.ID, Label: t.Name,
					Cells:  []string{itoa(t.ID), t.Name},
					Values: map[string]string{"postertype_name": t.Name},
				})
			}
			return rows, nil
		},
		create: func(ctx context.Context, s *Server, r *http.Request, v url.Values) error {
			p, err := forms.PosterType(v)
			if err != nil {
				return err
			}
			return s.client(r).CreatePosterType(ctx, p)
		},
		update: func(ctx context.Context, s *Server, r *http.Request, typeID int64, v url.Values) error {
			p, err := forms.PosterType(v)
			if err != nil {
				return err
			}
			return s.client(r).UpdatePosterType(ctx, typeID, p)
		},
		remove: func(ctx context.Context, s *Server, r *http.Request, typeID int64) error {
			return s.client(r).DeletePosterType(ctx, typeID)
		},
	}
}

func resolutionsResource() *resource {
	return &resource{
		Path:    "resolutions",
		Title:   "Quản lý độ phân giải",
		Noun:    "độ phân giải",
		Kind:    catalog.KindResolutions,
		Columns: []string{"ID", "Độ phân giải"},
		Fields:  []field{{Name: "resolution_type", Label: "Độ phân giải", Type: "text", Placeholder: "1080p"}},
		list: func(ctx context.Context, s *Server, r *http.Request, _ string) ([]row, error) {
			resolutions, err := s.client(r).ListResolutions(ctx)
			if err != nil {
				return nil, err
			}
			rows := make([]row, 0, len(resolutions))
			for _, res := range resolutions {
				rows = append(rows, row{
					ID: res.ID, Label: res.Type,
					Cells:  []string{itoa(res.ID), res.Type},
					Values: map[string]string{"resolution_type": res.Type},
				})
			}
			return rows, nil
		},
		create: func(ctx context.Context, s *Server, r *http.Request, v url.Values) error {
			p, err := forms.Resolution(v)
			if err != nil {
				return err
			}
			return s.client(r).CreateResolution(ctx, p)
		},
		update: func(ctx context.Context, s *Server, r *http.Request, resID int64, v url.Values) error {
			p, err := forms.Resolution(v)
			if err != nil {
				return err
			}
			return s.client(r).UpdateResolution(ctx, resID, p)
		},
		remove: func(ctx context.Context, s *Server, r *http.Request, resID int64) error {
			return s.client(r).DeleteResolution(ctx, resID)
		},
	}
}

func profilesResource() *resource {
	return &resource{
		Path:    "profiles",
		Title:   "Quản lý hồ sơ",
		Noun:    "hồ sơ",
		Search:  true,
		Columns: []string{"ID", "Tên hồ sơ", "Email", "Vai trò", "Tài khoản"},
		Fields: []field{
			nameField("profile_name", "Tên hồ sơ"),
			{Name: "avatar_url", Label: "Ảnh đại diện (URL)", Type: "url"},
			{Name: "account_id", Label: "ID tài khoản", Type: "number"},
		},
		list: func(ctx context.Context, s *Server, r *http.Request, q string) ([]row, error) {
			c := s.client(r)
			var (
				profiles []api.Profile
				err      error
			)
			if q != "" {
				profiles, err = c.SearchProfiles(ctx, q)
			} else {
				profiles, err = c.ListProfiles(ctx)
			}
			if err != nil {
				return nil, err
			}
			rows := make([]row, 0, len(profiles))
			for _, p := range profiles {
				account := ""
				if p.AccountID > 0 {
					account = itoa(p.AccountID)
				}
				rows = append(rows, row{
					ID:    p.ID,
					Label: p.Name,
					Cells: []string{itoa(p.ID), p.Name, p.Email, p.Role, account},
					Values: map[string]string{
						"profile_name": p.Name,
						"avatar_url":   p.AvatarURL,
						"account_id":   account,
					},
				})
			}
			return rows, nil
		},
		create: func(ctx context.Context, s *Server, r *http.Request, v url.Values) error {
			p, err := forms.Profile(v)
			if err != nil {
				return err
			}
			return s.client(r).CreateProfile(ctx, p)
		},
		update: func(ctx context.Context, s *Server, r *http.Request, profileID int64, v url.Values) error {
			p, err := forms.Profile(v)
			if err != nil {
				return err
			}
			return s.client(r).UpdateProfile(ctx, profileID, p)
		},
		remove: func(ctx context.Context, s *Server, r *http.Request, profileID int64) error {
			return s.client(r).DeleteProfile(ctx, profileID)
		},
	}
}

func yesno(b bool) string {
	if b {
		return "Có"
	}
	return "Không"
}
