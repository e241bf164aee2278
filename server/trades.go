package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/ledger/journal"
	"github.com/rustyeddy/ledger/market"
	"github.com/rustyeddy/ledger/store"
)

func (s *Server) createTrade(c *gin.Context) {
	var e journal.Entry
	if err := c.ShouldBindJSON(&e); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	t, err := s.ledger.LogTrade(c.Request.Context(), e)
	if err != nil {
		s.fail(c, err)
		return
	}
	Created(c, t)
}

func (s *Server) listTrades(c *gin.Context) {
	filter, err := journal.ParseFilter(c.Query("direction"), c.Query("period"))
	if err != nil {
		s.fail(c, err)
		return
	}
	page, err := s.ledger.Trades(c.Request.Context(), store.Query{
		Page:   intQuery(c, "page", 1),
		Limit:  intQuery(c, "limit", store.DefaultPageSize),
		Filter: filter,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	Ok(c, page.Trades, map[string]any{
		"page":       page.Page,
		"limit":      page.Limit,
		"total":      page.Total,
		"totalPages": page.TotalPages,
	})
}

func (s *Server) getTrade(c *gin.Context) {
	d, err := s.ledger.Trade(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	Ok(c, d, nil)
}

func (s *Server) dashboard(c *gin.Context) {
	d, err := s.ledger.Dashboard(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	Ok(c, d, nil)
}

func (s *Server) equity(c *gin.Context) {
	var start *decimal.Decimal
	if raw := strings.TrimSpace(c.Query("starting_balance")); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			Error(c, http.StatusBadRequest, "starting_balance must be a number", nil)
			return
		}
		start = &v
	}
	curve, err := s.ledger.EquityCurve(c.Request.Context(), start)
	if err != nil {
		s.fail(c, err)
		return
	}
	Ok(c, curve, map[string]any{"points": len(curve)})
}

func (s *Server) day(c *gin.Context) {
	day := time.Now()
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		d, err := time.ParseInLocation(time.DateOnly, raw, time.Local)
		if err != nil {
			Error(c, http.StatusBadRequest, "date must be YYYY-MM-DD", nil)
			return
		}
		day = d
	}
	sum, err := s.ledger.Day(c.Request.Context(), day)
	if err != nil {
		s.fail(c, err)
		return
	}
	Ok(c, sum, nil)
}

// export writes the log, narrowed by the same direction and period
// parameters as the trade list.
func (s *Server) export(c *gin.Context) {
	ctx := c.Request.Context()
	filter, err := journal.ParseFilter(c.Query("direction"), c.Query("period"))
	if err != nil {
		s.fail(c, err)
		return
	}
	switch strings.ToLower(c.DefaultQuery("format", "csv")) {
	case "csv":
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", `attachment; filename="trades.csv"`)
		c.Status(http.StatusOK)
		if err := s.ledger.ExportCSV(ctx, c.Writer, filter); err != nil {
			s.log.Errorw("csv export failed", "error", err)
		}
	case "org":
		c.Header("Content-Type", "text/plain; charset=utf-8")
		c.Status(http.StatusOK)
		if err := s.ledger.ExportOrg(ctx, c.Writer, filter); err != nil {
			s.log.Errorw("org export failed", "error", err)
		}
	default:
		Error(c, http.StatusBadRequest, "format must be csv or org", nil)
	}
}

func (s *Server) instruments(c *gin.Context) {
	reg := s.ledger.Registry()
	out := make([]market.InstrumentMeta, 0)
	for _, sym := range reg.Symbols() {
		meta, _ := reg.Lookup(sym)
		out = append(out, meta)
	}
	Ok(c, out, map[string]any{"defaultPointValue": market.DefaultPointValue})
}

type positionSizeRequest struct {
	Ticker     string          `json:"ticker" binding:"required"`
	Balance    decimal.Decimal `json:"balance"`
	RiskPct    float64         `json:"riskPct" binding:"required,gt=0,lte=1"`
	EntryPrice float64         `json:"entryPrice"`
	StopPrice  float64         `json:"stopPrice"`
}

func (s *Server) positionSize(c *gin.Context) {
	var req positionSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	Ok(c, s.ledger.PositionSize(req.Ticker, req.Balance, req.RiskPct, req.EntryPrice, req.StopPrice), nil)
}
