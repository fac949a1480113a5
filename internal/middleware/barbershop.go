package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type BarbershopLookup interface {
	GetBarbershopBySlug(ctx context.Context, slug string) (*models.Barbershop, error)
}

// BarbershopFromSlug resolves :slug on public routes and stores the shop id
// under the same key the auth middleware uses, so handlers serve both flows.
func BarbershopFromSlug(lookup BarbershopLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		shop, err := lookup.GetBarbershopBySlug(c.Request.Context(), c.Param("slug"))
		if errors.Is(err, domain.ErrRecordNotFound) {
			httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
			c.Abort()
			return
		}
		if err != nil {
			httperr.Internal(c, "barbershop_lookup_failed", "Erro ao carregar barbearia.")
			c.Abort()
			return
		}

		c.Set(ContextBarbershopID, shop.ID)
		c.Next()
	}
}
