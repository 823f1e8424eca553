package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type Actor struct {
	ID     int64
	Name   string
	Gender string
	Avatar string
}

func (a *Actor) UnmarshalJSON(b []byte) error {
	f, err := decodeFields(b)
	if err != nil {
		return err
	}
	a.ID = f.int64("Actor_id", "actor_id", "id", "value")
	a.Name = f.str("Actor_name", "actor_name", "name", "label", "text")
	a.Gender = f.str("Actor_gender", "actor_gender", "gender")
	a.Avatar = f.str("Actor_avatar", "actor_avatar", "avatar")
	return nil
}

type ActorPayload struct {
	Name   string `json:"actor_name"`
	Gender string `json:"actor_gender"`
	Avatar string `json:"actor_avatar"`
}

const actorsPath = "/api/actors"

func (c *Client) ListActors(ctx context.Context) ([]Actor, error) {
	var out []Actor
	if err := c.get(ctx, "actors.list", actorsPath+"/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SearchActors(ctx context.Context, keyword string) ([]Actor, error) {
	var out []Actor
	q := url.Values{"keyword": {keyword}}
	if err := c.get(ctx, "actors.search", actorsPath+"/search", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateActor(ctx context.Context, p ActorPayload) error {
	return c.send(ctx, "actors.create", http.MethodPost, actorsPath+"/", p, nil)
}

func (c *Client) UpdateActor(ctx context.Context, id int64, p ActorPayload) error {
	return c.send(ctx, "actors.update", http.MethodPut, fmt.Sprintf("%s/%d", actorsPath, id), p, nil)
}

func (c *Client) DeleteActor(ctx context.Context, id int64) error {
	return c.send(ctx, "actors.delete", http.MethodDelete, fmt.Sprintf("%s/%d", actorsPath, id), nil, nil)
}
