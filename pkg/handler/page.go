package handler

import (
	"net/http"

	"github.com/devesh1011/EtherBlinks/models"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type chainView struct {
	Name         string
	ChainIDHex   string
	RPCURL       string
	ExplorerURL  string
	Currency     string
	CurrencyName string
	Decimals     int32
}

func (h *Handler) chainView() chainView {
	cfg := h.service.Chain
	return chainView{
		Name:         cfg.Name,
		ChainIDHex:   hexutil.EncodeUint64(uint64(cfg.ID)),
		RPCURL:       cfg.RPCURL,
		ExplorerURL:  cfg.ExplorerURL,
		Currency:     cfg.Currency.Symbol,
		CurrencyName: cfg.Currency.Name,
		Decimals:     cfg.Currency.Decimals,
	}
}

// ActionPage resolves the token and renders the page that lets the visitor
// execute the action with a browser wallet.
func (h *Handler) ActionPage(c *gin.Context) {
	token := c.Param("token")

	action, err := h.service.ResolveLink(c.Request.Context(), token)
	if err != nil {
		logrus.WithError(err).WithField("token", token).Warn("action link resolution failed")
		c.HTML(http.StatusNotFound, "invalid.html", gin.H{"Message": invalidLinkMessage})
		return
	}

	data := gin.H{
		"Meta":  h.service.Present(action),
		"Type":  action.Type(),
		"Chain": h.chainView(),
	}

	req, err := h.service.Request(action)
	if err != nil {
		data["Error"] = err.Error()
	} else {
		data["Request"] = req
	}

	c.HTML(http.StatusOK, "action.html", data)
}

func (h *Handler) CreateLinkPage(c *gin.Context) {
	c.HTML(http.StatusOK, "create_link.html", gin.H{
		"Input":    models.CreateActionInput{ActionType: models.ActionTip},
		"Currency": h.service.Chain.Currency.Symbol,
	})
}

// CreateLinkForm encodes the submitted action with the configured link
// strategy and shows the resulting URL.
func (h *Handler) CreateLinkForm(c *gin.Context) {
	var input models.CreateActionInput
	data := gin.H{"Currency": h.service.Chain.Currency.Symbol}

	if err := c.ShouldBind(&input); err != nil {
		data["Input"] = input
		data["Error"] = "invalid form submission"
		c.HTML(http.StatusBadRequest, "create_link.html", data)
		return
	}
	data["Input"] = input

	if err := input.Validate(); err != nil {
		data["Error"] = err.Error()
		c.HTML(http.StatusBadRequest, "create_link.html", data)
		return
	}

	action, err := input.Action()
	if err == nil {
		var url string
		url, err = h.service.EncodeLink(c.Request.Context(), action)
		data["Link"] = url
	}
	if err != nil {
		status, message := classify(err)
		logrus.WithError(err).Error("create link form")
		data["Error"] = message
		c.HTML(status, "create_link.html", data)
		return
	}

	c.HTML(http.StatusOK, "create_link.html", data)
}
