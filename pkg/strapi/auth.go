package strapi

import (
	"context"
	"net/http"
	"net/url"

	"turmeric-trace/entities"
)

type AuthResult struct {
	JWT  string        `json:"jwt"`
	User entities.User `json:"user"`
}

func Login(ctx context.Context, b Backend, identifier, password string) (AuthResult, error) {
	var res AuthResult
	err := b.Send(ctx, "", Request{
		Method:     http.MethodPost,
		Path:       "/api/auth/local",
		Body:       map[string]string{"identifier": identifier, "password": password},
		Collection: "auth",
	}, &res)
	return res, err
}

func ResetPassword(ctx context.Context, b Backend, code, password, confirmation string) (AuthResult, error) {
	var res AuthResult
	err := b.Send(ctx, "", Request{
		Method: http.MethodPost,
		Path:   "/api/auth/reset-password",
		Body: map[string]string{
			"code":                 code,
			"password":             password,
			"passwordConfirmation": confirmation,
		},
		Collection: "auth",
	}, &res)
	return res, err
}

// Me returns the profile of the token's owner with relations populated.
func Me(ctx context.Context, b Backend, token string) (entities.User, error) {
	var u entities.User
	err := b.Send(ctx, token, Request{
		Method:     http.MethodGet,
		Path:       "/api/users/me",
		Query:      PopulateAll().Values(),
		Collection: "users",
	}, &u)
	return u, err
}

// Users lists user accounts. The users endpoint returns a bare array.
func Users(ctx context.Context, b Backend, token string, q Query) ([]entities.User, error) {
	users := []entities.User{}
	err := b.Send(ctx, token, Request{
		Method:     http.MethodGet,
		Path:       "/api/users",
		Query:      q.Values(),
		Collection: "users",
	}, &users)
	return users, err
}

// AllUsers walks /api/users page by page. The endpoint answers with a bare
// array and no pagination meta, so a page shorter than the page size ends
// the walk. A page that adds no unseen user ends it too, for backends that
// ignore the pagination parameters.
func AllUsers(ctx context.Context, b Backend, token string, q Query) ([]entities.User, error) {
	q.Page = 1
	if q.PageSize <= 0 {
		q.PageSize = MaxPageSize
	}

	all := []entities.User{}
	seen := map[int]bool{}
	for {
		users, err := Users(ctx, b, token, q)
		if err != nil {
			return nil, err
		}

		added := 0
		for _, u := range users {
			if seen[u.ID] {
				continue
			}
			seen[u.ID] = true
			all = append(all, u)
			added++
		}

		if len(users) < q.PageSize || added == 0 {
			return all, nil
		}
		q.Page++
	}
}

func FileMeta(ctx context.Context, b Backend, token, id string) (entities.UploadFile, error) {
	var f entities.UploadFile
	err := b.Send(ctx, token, Request{
		Method:     http.MethodGet,
		Path:       "/api/upload/files/" + url.PathEscape(id),
		Collection: "upload",
	}, &f)
	return f, err
}
