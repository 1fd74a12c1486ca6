package models

const (
	DirectionIncrease = "increase"
	DirectionDecrease = "decrease"
)

// CartLine is one product entry embedded in an account's cart. ProductName
// and Price are snapshots taken when the line was created.
type CartLine struct {
	ProductName string `json:"productName"`
	Price       int64  `json:"price"`
	Image       string `json:"image"`
	Quantity    int    `json:"quantity"`
}

// Cart holds at most one line per product name, each with quantity >= 1.
type Cart []CartLine

func (c Cart) indexOf(productName string) int {
	for i := range c {
		if c[i].ProductName == productName {
			return i
		}
	}
	return -1
}

// AddItem increments the line matching item.ProductName or appends a new
// line with quantity 1. The price and image of an existing line are kept.
func (c *Cart) AddItem(item CartLine) {
	if i := c.indexOf(item.ProductName); i >= 0 {
		(*c)[i].Quantity++
		return
	}
	item.Quantity = 1
	*c = append(*c, item)
}

// AdjustQuantity moves a line's quantity by one in the given direction and
// drops the line once it reaches zero. Unknown names and directions are ignored.
func (c *Cart) AdjustQuantity(productName, direction string) {
	i := c.indexOf(productName)
	if i < 0 {
		return
	}

	switch direction {
	case DirectionIncrease:
		(*c)[i].Quantity++
	case DirectionDecrease:
		(*c)[i].Quantity--
	default:
		return
	}

	if (*c)[i].Quantity <= 0 {
		*c = append((*c)[:i], (*c)[i+1:]...)
	}
}

// RemoveItem drops every line named productName.
func (c *Cart) RemoveItem(productName string) {
	kept := (*c)[:0]
	for _, line := range *c {
		if line.ProductName != productName {
			kept = append(kept, line)
		}
	}
	*c = kept
}

func (c Cart) Total() int64 {
	var total int64
	for _, line := range c {
		total += line.Price * int64(line.Quantity)
	}
	return total
}

func (c Cart) Count() int {
	n := 0
	for _, line := range c {
		n += line.Quantity
	}
	return n
}

// Normalize repairs a stored cart: duplicate names are folded into the first
// line and lines with a non-positive quantity are dropped.
func (c Cart) Normalize() Cart {
	out := make(Cart, 0, len(c))
	for _, line := range c {
		if line.Quantity <= 0 {
			continue
		}
		if i := out.indexOf(line.ProductName); i >= 0 {
			out[i].Quantity += line.Quantity
			continue
		}
		out = append(out, line)
	}
	return out
}
