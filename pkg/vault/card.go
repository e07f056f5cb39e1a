package vault

// Card is the payload of a credit card entry.
type Card struct {
	CardholderName string `json:"cardholder_name,omitempty" yaml:"cardholder_name,omitempty"`
	Brand          string `json:"brand,omitempty" yaml:"brand,omitempty"` // Card network or vendor type code
	Number         string `json:"number,omitempty" yaml:"number,omitempty"`
	Code           string `json:"code,omitempty" yaml:"code,omitempty"` // Verification code (CVV/CVC)
	Expiration     string `json:"expiration,omitempty" yaml:"expiration,omitempty"`
	PIN            string `json:"pin,omitempty" yaml:"pin,omitempty"`
}

// mergeCard combines two card payloads under the standard scalar rule.
func mergeCard(newer, older *Card) *Card {
	if newer == nil && older == nil {
		return nil
	}
	if newer == nil {
		newer = &Card{}
	}
	if older == nil {
		older = &Card{}
	}
	return &Card{
		CardholderName: pickString(newer.CardholderName, older.CardholderName),
		Brand:          pickString(newer.Brand, older.Brand),
		Number:         pickString(newer.Number, older.Number),
		Code:           pickString(newer.Code, older.Code),
		Expiration:     pickString(newer.Expiration, older.Expiration),
		PIN:            pickString(newer.PIN, older.PIN),
	}
}
