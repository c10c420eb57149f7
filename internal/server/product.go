package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	obslogger "github.com/smallbiznis/shiftcount/internal/observability/logger"
	productdomain "github.com/smallbiznis/shiftcount/internal/product/domain"
	"go.uber.org/zap"
)

type productView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	Singles    int    `json:"singles"`
	Cases      int    `json:"cases"`
	Pack       int    `json:"pack"`
	Completed  bool   `json:"completed"`
	TotalUnits int    `json:"total_units"`
}

func toProductView(p productdomain.Product) productView {
	return productView{
		ID:         p.ID.String(),
		Name:       p.Name,
		Category:   p.Category,
		Singles:    p.Singles,
		Cases:      p.Cases,
		Pack:       p.Pack,
		Completed:  p.Completed,
		TotalUnits: p.TotalUnits(),
	}
}

func toProductViews(products []productdomain.Product) []productView {
	out := make([]productView, 0, len(products))
	for _, p := range products {
		out = append(out, toProductView(p))
	}
	return out
}

func (s *Server) ListProducts(c *gin.Context) {
	active, err := parseOptionalBool(c.Query("active"))
	if err != nil {
		AbortWithError(c, newValidationError("active", "invalid_active", "invalid active"))
		return
	}

	ctx := c.Request.Context()
	var products []productdomain.Product
	if active != nil && *active {
		products = s.products.Active(ctx)
	} else {
		products = s.products.Snapshot(ctx)
	}

	c.JSON(http.StatusOK, gin.H{"data": toProductViews(products)})
}

type createProductRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

func (s *Server) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.products.Add(c.Request.Context(), productdomain.AddRequest{
		Name:     strings.TrimSpace(req.Name),
		Category: strings.TrimSpace(req.Category),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": toProductView(resp)})
}

func (s *Server) GetProduct(c *gin.Context) {
	id, err := parseProductID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.products.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toProductView(resp)})
}

func (s *Server) DeleteProduct(c *gin.Context) {
	id, err := parseProductID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	deleted, err := s.products.Delete(c.Request.Context(), id, confirmation(c.Query("confirm")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": deleted}})
}

type changeCountRequest struct {
	Field string `json:"field"`
	Delta int    `json:"delta"`
}

func (s *Server) ChangeCount(c *gin.Context) {
	id, err := parseProductID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req changeCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	field := productdomain.Field(strings.ToLower(strings.TrimSpace(req.Field)))
	obslogger.Annotate(c, zap.String("field", string(field)), zap.Int("delta", req.Delta))
	resp, err := s.products.ChangeCount(c.Request.Context(), id, field, req.Delta)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toProductView(resp)})
}

type changePackRequest struct {
	Pack any `json:"pack"`
}

// ChangePackSize takes the typed answer of the pack size prompt. A missing
// or null pack is a cancelled prompt.
func (s *Server) ChangePackSize(c *gin.Context) {
	id, err := parseProductID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req changePackRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
	}

	resp, changed, err := s.products.ChangePackSize(c.Request.Context(), id, packInput(req.Pack))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"product": toProductView(resp),
		"changed": changed,
	}})
}

func packInput(value any) *string {
	var s string
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		s = v
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return &s
}

func (s *Server) CompleteProduct(c *gin.Context) {
	id, err := parseProductID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.products.Complete(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toProductView(resp)})
}

func (s *Server) ResetShift(c *gin.Context) {
	reset, err := s.products.ResetShift(c.Request.Context(), confirmation(c.Query("confirm")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"reset": reset}})
}

func (s *Server) ListPackSizes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.shift.Get().PackSizes})
}
