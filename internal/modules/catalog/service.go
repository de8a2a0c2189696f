package catalog

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/vpalhares/gamestock-backend/internal/validate"
)

// Service defines catalog business logic.
type Service interface {
	CreateGame(ctx context.Context, req CreateGameRequest) (*Game, error)
	GetGame(ctx context.Context, id int64) (*Game, error)
	ListGames(ctx context.Context) ([]*Game, error)
	UpdateGame(ctx context.Context, id int64, req UpdateGameRequest) (*Game, error)
	DeleteGame(ctx context.Context, id int64) error
	Reset(ctx context.Context) ([]*Game, error)
}

// CreateGameRequest holds the data for registering a game.
type CreateGameRequest struct {
	Title     string          `json:"title"`
	Developer string          `json:"developer"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// UpdateGameRequest carries a partial update; nil fields are left
// unchanged.
type UpdateGameRequest struct {
	Title     *string          `json:"title"`
	Developer *string          `json:"developer"`
	Quantity  *int             `json:"quantity"`
	Price     *decimal.Decimal `json:"price"`
}

type service struct{ repo Repository }

// NewService creates a new catalog service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateGame(ctx context.Context, req CreateGameRequest) (*Game, error) {
	if err := validate.RequiredText("title", req.Title); err != nil {
		return nil, err
	}
	if err := validate.RequiredText("developer", req.Developer); err != nil {
		return nil, err
	}
	if err := validate.Quantity("quantity", req.Quantity); err != nil {
		return nil, err
	}
	if err := validate.Price("price", req.Price); err != nil {
		return nil, err
	}

	g := &Game{
		Title:     req.Title,
		Developer: req.Developer,
		Quantity:  req.Quantity,
		Price:     req.Price,
	}
	if err := s.repo.Insert(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *service) GetGame(ctx context.Context, id int64) (*Game, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListGames(ctx context.Context) ([]*Game, error) {
	return s.repo.List(ctx)
}

// UpdateGame applies only the supplied fields. Each one is validated
// before the record is touched; a single invalid field rejects the
// whole request with no changes applied.
func (s *service) UpdateGame(ctx context.Context, id int64, req UpdateGameRequest) (*Game, error) {
	if req.Title == nil && req.Developer == nil && req.Quantity == nil && req.Price == nil {
		return s.repo.GetByID(ctx, id)
	}
	if req.Title != nil {
		if err := validate.RequiredText("title", *req.Title); err != nil {
			return nil, err
		}
	}
	if req.Developer != nil {
		if err := validate.RequiredText("developer", *req.Developer); err != nil {
			return nil, err
		}
	}
	if req.Quantity != nil {
		if err := validate.Quantity("quantity", *req.Quantity); err != nil {
			return nil, err
		}
	}
	if req.Price != nil {
		if err := validate.Price("price", *req.Price); err != nil {
			return nil, err
		}
	}

	return s.repo.Update(ctx, id, func(g *Game) error {
		if req.Title != nil {
			g.Title = *req.Title
		}
		if req.Developer != nil {
			g.Developer = *req.Developer
		}
		if req.Quantity != nil {
			g.Quantity = *req.Quantity
		}
		if req.Price != nil {
			g.Price = *req.Price
		}
		return nil
	})
}

func (s *service) DeleteGame(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) Reset(ctx context.Context) ([]*Game, error) {
	return s.repo.Reset(ctx)
}
