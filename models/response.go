package models

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Flash   *Flash      `json:"flash,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type MetaData struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

type PaginationResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Meta    MetaData    `json:"meta"`
}

type CartView struct {
	Items Cart  `json:"items"`
	Count int   `json:"count"`
	Total int64 `json:"total"`
}

func NewCartView(c Cart) CartView {
	if c == nil {
		c = Cart{}
	}
	return CartView{Items: c, Count: c.Count(), Total: c.Total()}
}

type CheckoutView struct {
	Account *SessionUser `json:"account"`
	Cart    CartView     `json:"cart"`
	Total   int64        `json:"total"`
}
