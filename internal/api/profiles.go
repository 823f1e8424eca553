package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type Profile struct {
	ID        int64
	Name      string
	Email     string
	Role      string
	AvatarURL string
	AccountID int64
}

func (p *Profile) UnmarshalJSON(b []byte) error {
	f, err := decodeFields(b)
	if err != nil {
		return err
	}
	p.ID = f.int64("Profile_id", "profile_id", "id")
	p.Name = f.str("Profile_name", "profile_name", "name")
	p.Email = f.str("Email", "email")
	p.Role = f.str("role", "Role")
	p.AvatarURL = f.str("Avatar_url", "avatar_url")
	p.AccountID = f.int64("Account_id", "account_id")
	return nil
}

// ProfilePayload keeps account_id as the raw form text, matching what the
// backend has always been sent.
type ProfilePayload struct {
	Name      string `json:"profile_name"`
	AvatarURL string `json:"avatar_url"`
	AccountID string `json:"account_id"`
}

const profilesPath = "/api/profiles"

func (c *Client) ListProfiles(ctx context.Context) ([]Profile, error) {
	var out []Profile
	if err := c.get(ctx, "profiles.list", profilesPath+"/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SearchProfiles(ctx context.Context, q string) ([]Profile, error) {
	var out []Profile
	if err := c.get(ctx, "profiles.search", profilesPath+"/search", url.Values{"q": {q}}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateProfile(ctx context.Context, p ProfilePayload) error {
	return c.send(ctx, "profiles.create", http.MethodPost, profilesPath+"/", p, nil)
}

func (c *Client) UpdateProfile(ctx context.Context, id int64, p ProfilePayload) error {
	return c.send(ctx, "profiles.update", http.MethodPut, fmt.Sprintf("%s/%d", profilesPath, id), p, nil)
}

func (c *Client) DeleteProfile(ctx context.Context, id int64) error {
	return c.send(ctx, "profiles.delete", http.MethodDelete, fmt.Sprintf("%s/%d", profilesPath, id), nil, nil)
}
