// jansaathi/controllers/schemes.go
package controllers

import (
	"context"

	"jansaathi/jansaathi/sources/psql/dao"
	"jansaathi/jansaathi/sources/psql/models"
)

// SchemesController serves the public scheme directory.
type SchemesController struct {
	schemeDAO *dao.SchemeDAO
}

func NewSchemesController(schemeDAO *dao.SchemeDAO) *SchemesController {
	return &SchemesController{schemeDAO: schemeDAO}
}

func (c *SchemesController) List(ctx context.Context, f dao.SchemeFilter) ([]models.Scheme, error) {
	schemes, err := c.schemeDAO.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if schemes == nil {
		schemes = []models.Scheme{}
	}
	return schemes, nil
}
