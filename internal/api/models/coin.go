package models

// MarketsQuery holds the recognized query parameters for the markets route.
type MarketsQuery struct {
	VsCurrency string `form:"vs_currency" validate:"omitempty,alphanum,max=10"`
	Page       int    `form:"page" validate:"omitempty,min=1,max=1000"`
}

// ChartQuery holds the recognized query parameters for the chart route.
type ChartQuery struct {
	VsCurrency string `form:"vs_currency" validate:"omitempty,alphanum,max=10"`
	Days       string `form:"days" validate:"omitempty,max=6"`
}
