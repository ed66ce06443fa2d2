package catalog

import (
	"context"
	"net/http"
	"strconv"

	"storefront-client/models"
)

// ProductService maps the backend's product CRUD endpoints.
type ProductService struct {
	client *Client
}

func NewProductService(client *Client) *ProductService {
	return &ProductService{client: client}
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	var resp models.Response[[]models.Product]
	if err := s.client.do(ctx, http.MethodGet, "/Product", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (s *ProductService) Get(ctx context.Context, id int) (*models.Product, error) {
	var resp models.Response[models.Product]
	if err := s.client.do(ctx, http.MethodGet, "/Product/"+strconv.Itoa(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (s *ProductService) Create(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	var resp models.Response[models.Product]
	if err := s.client.do(ctx, http.MethodPost, "/Product", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (s *ProductService) Update(ctx context.Context, req models.UpdateProductRequest) (*models.Product, error) {
	var resp models.Response[models.Product]
	if err := s.client.do(ctx, http.MethodPut, "/Product/"+strconv.Itoa(req.ID), req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (s *ProductService) Delete(ctx context.Context, id int) error {
	return s.client.do(ctx, http.MethodDelete, "/Product/"+strconv.Itoa(id), nil, nil)
}
