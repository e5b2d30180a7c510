package dto

type PageFilter struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// Normalize applies the handler-level defaults for page filters.
func (f *PageFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
}

func (f *PageFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}
