package response

// ListMeta describes a list payload. Limit is zero for unbounded lists.
type ListMeta struct {
	Count int `json:"count"`
	Limit int `json:"limit,omitempty"`
}

func NewListMeta(count, limit int) *ListMeta {
	return &ListMeta{Count: count, Limit: limit}
}
