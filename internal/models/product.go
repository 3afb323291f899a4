package models

// Product represents a row in the PostgreSQL shop_items table.
type Product struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url"`
}

// NewProductRequest is the JSON body for POST /api/admin/add-product.
// Fields are pointers so an absent field can be told apart from a zero value.
type NewProductRequest struct {
	Name     *string  `json:"name"`
	Price    *float64 `json:"price"`
	ImageURL *string  `json:"image_url"`
}

// Missing returns the JSON names of required fields absent from the body.
func (r NewProductRequest) Missing() []string {
	var missing []string
	if r.Name == nil {
		missing = append(missing, "name")
	}
	if r.Price == nil {
		missing = append(missing, "price")
	}
	if r.ImageURL == nil {
		missing = append(missing, "image_url")
	}
	return missing
}

// NewProduct is a validated insert request.
type NewProduct struct {
	Name     string
	Price    float64
	ImageURL string
}

// Result is the generic {success, message} body used by write endpoints.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// UploadResult is returned by POST /api/admin/upload-image.
type UploadResult struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	ImageURL string `json:"image_url,omitempty"`
}
