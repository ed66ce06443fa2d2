package catalog

import (
	"context"
	"net/http"
	"strconv"

	"storefront-client/models"
)

// CategoryService maps the backend's category CRUD endpoints.
type CategoryService struct {
	client *Client
}

func NewCategoryService(client *Client) *CategoryService {
	return &CategoryService{client: client}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	var resp models.Response[[]models.Category]
	if err := s.client.do(ctx, http.MethodGet, "/Category", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (s *CategoryService) Get(ctx context.Context, id int) (*models.Category, error) {
	var resp models.Response[models.Category]
	if err := s.client.do(ctx, http.MethodGet, "/Category/"+strconv.Itoa(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (s *CategoryService) Create(ctx context.Context, req models.CreateCategoryRequest) (*models.Category, error) {
	var resp models.Response[models.Category]
	if err := s.client.do(ctx, http.MethodPost, "/Category", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (s *CategoryService) Update(ctx context.Context, req models.UpdateCategoryRequest) (*models.Category, error) {
	var resp models.Response[models.Category]
	if err := s.client.do(ctx, http.MethodPut, "/Category/"+strconv.Itoa(req.ID), req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (s *CategoryService) Delete(ctx context.Context, id int) error {
	return s.client.do(ctx, http.MethodDelete, "/Category/"+strconv.Itoa(id), nil, nil)
}
