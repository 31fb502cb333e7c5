package domain

// ShopItem is a purchasable power-up. Purchasing is not implemented
// server-side yet; the client only gates on affordability.
type ShopItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Cost        int    `json:"cost"`
	ItemType    string `json:"item_type"`
	Effect      string `json:"effect,omitempty"`
}
