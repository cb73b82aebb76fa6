package request

// MedicationRequest represents the create/update medication request body
type MedicationRequest struct {
	CIPCode       string  `json:"cip_code" binding:"required"`
	Name          string  `json:"name" binding:"required"`
	DCI           string  `json:"dci" binding:"required"`
	Form          string  `json:"form"`
	Dosage        string  `json:"dosage"`
	Category      string  `json:"category" binding:"required"`
	Stock         int     `json:"stock" binding:"gte=0"`
	MinimumStock  int     `json:"minimum_stock" binding:"gte=0"`
	PurchasePrice float64 `json:"purchase_price" binding:"gte=0"`
	SellingPrice  float64 `json:"selling_price" binding:"gte=0"`
	Reimbursable  bool    `json:"reimbursable"`
	Packaging     string  `json:"packaging"`
}

// AdjustStockRequest represents a manual stock correction request body
type AdjustStockRequest struct {
	Quantity int     `json:"quantity" binding:"required"`
	Note     *string `json:"note"`
}
