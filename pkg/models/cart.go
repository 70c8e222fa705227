package models

import "encoding/json"

// CartLine is one entry of the browser cart as it is snapshotted into an
// order. The cart itself lives in the browser's local storage, which keys
// the line count as "qty".
type CartLine struct {
	Name     string  `json:"name" bson:"name" validate:"required"`
	Price    float64 `json:"price" bson:"price" validate:"gte=0"`
	Quantity int     `json:"qty" bson:"qty" validate:"gte=1"`
	Image    string  `json:"image,omitempty" bson:"image,omitempty"`
}

// UnmarshalJSON also accepts "quantity" for clients that spell it out.
// "qty" wins when both are sent.
func (l *CartLine) UnmarshalJSON(data []byte) error {
	type line CartLine
	var aux struct {
		line
		Quantity *int `json:"quantity"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*l = CartLine(aux.line)
	if l.Quantity == 0 && aux.Quantity != nil {
		l.Quantity = *aux.Quantity
	}
	return nil
}
