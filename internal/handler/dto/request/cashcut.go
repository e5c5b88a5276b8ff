package request

type CreateCashCutRequest struct {
	Notes string `json:"notes" binding:"max=500"`
}

type ListCashCutsQuery struct {
	Limit int `form:"limit" binding:"omitempty,gte=1,lte=200"`
}
