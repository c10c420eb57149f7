package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/shiftcount/internal/report/render"
)

func (s *Server) PreviewReport(c *gin.Context) {
	report, err := s.reports.Preview(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"title":      s.reports.Title(),
		"items":      report.Rows,
		"grandTotal": report.GrandTotal,
	}})
}

func (s *Server) DownloadCSV(c *gin.Context) {
	data, err := s.reports.CSV(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+render.CSVFilename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

func (s *Server) DeliverReport(c *gin.Context) {
	outcome, err := s.reports.Deliver(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": outcome})
}
