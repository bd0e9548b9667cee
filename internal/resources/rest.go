package resources

import (
	"context"
	"net/url"
	"strconv"

	"github.com/spec-kit/resistance-admin/internal/api/dto"
	"github.com/spec-kit/resistance-admin/internal/apiclient"
	"github.com/spec-kit/resistance-admin/internal/domain"
)

type restService[T, C, U any] struct {
	client *apiclient.Client
	path   string
}

func newRemoteCatalog(client *apiclient.Client) *Catalog {
	return &Catalog{
		Victims:  &restService[domain.Victim, dto.CreateVictimRequest, dto.UpdateVictimRequest]{client: client, path: "/victims"},
		Attempts: &restService[domain.Attempt, dto.CreateAttemptRequest, dto.UpdateAttemptRequest]{client: client, path: "/attempts"},
		Reports:  &restService[domain.Report, dto.CreateReportRequest, dto.UpdateReportRequest]{client: client, path: "/reports"},
		Rewards:  &restService[domain.Reward, dto.CreateRewardRequest, dto.UpdateRewardRequest]{client: client, path: "/rewards"},
		Content:  &restService[domain.Content, dto.CreateContentRequest, dto.UpdateContentRequest]{client: client, path: "/content"},
		Users:    &restService[domain.User, dto.CreateUserRequest, dto.UpdateUserRequest]{client: client, path: "/users"},
		Profile:  &restProfile{client: client},
	}
}

// listQuery only carries the parameters that were set.
func listQuery(params domain.ListParams) url.Values {
	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.DaemonUsername != "" {
		query.Set("daemonUsername", params.DaemonUsername)
	}
	return query
}

func (s *restService[T, C, U]) item(id string) string {
	return s.path + "/" + apiclient.PathEscape(id)
}

func (s *restService[T, C, U]) List(ctx context.Context, params domain.ListParams) (*domain.Page[T], error) {
	var page domain.Page[T]
	if err := s.client.Get(ctx, s.path, listQuery(params), &page); err != nil {
		return nil, err
	}
	if page.Data == nil {
		page.Data = []T{}
	}
	return &page, nil
}

func (s *restService[T, C, U]) Get(ctx context.Context, id string) (*T, error) {
	var out T
	if err := s.client.Get(ctx, s.item(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *restService[T, C, U]) Create(ctx context.Context, input C) (*T, error) {
	if err := dto.Validate(input); err != nil {
		return nil, err
	}
	var out T
	if err := s.client.Post(ctx, s.path, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *restService[T, C, U]) Update(ctx context.Context, id string, input U) (*T, error) {
	if err := dto.Validate(input); err != nil {
		return nil, err
	}
	var out T
	if err := s.client.Patch(ctx, s.item(id), input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *restService[T, C, U]) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, s.item(id))
}

type restProfile struct {
	client *apiclient.Client
}

func (p *restProfile) Me(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := p.client.Get(ctx, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
