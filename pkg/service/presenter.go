package service

import (
	"fmt"

	"github.com/devesh1011/EtherBlinks/models"
)

const actionIcon = "/static/tip_icon.png"

// Present derives the display metadata of an action. An explicit
// description replaces the generated one.
func Present(a models.Action, currency string) models.Metadata {
	var md models.Metadata

	switch v := a.(type) {
	case models.Tip:
		md = models.Metadata{
			Title:       "Send a Tip",
			Icon:        actionIcon,
			Description: fmt.Sprintf("You are about to send a %s %s tip.", v.AmountNative, currency),
			Label:       "Send Tip",
		}
	case models.NftSale:
		md = models.Metadata{
			Title:       "Buy an NFT",
			Icon:        actionIcon,
			Description: fmt.Sprintf("You are about to buy NFT #%s for %s %s.", v.TokenID, v.PriceNative, currency),
			Label:       "Buy NFT",
		}
	default:
		return models.Metadata{Title: "Unknown action", Icon: actionIcon}
	}

	if d := a.Desc(); d != "" {
		md.Description = d
	}
	return md
}
