package backend

// OperationInfo is the hours/holidays wire snapshot.
type OperationInfo struct {
	RegularHolidays   RegularHolidays  `json:"regular_holidays"`
	TemporaryHolidays TemporaryHoliday `json:"temporary_holidays"`
	OpeningHours      []OpeningHours   `json:"opening_hours"`
}

// RegularHolidays is the recurring closure rule on the wire. Mode is "none",
// "weekly" or "monthly"; Weeks uses 1-5 with 0 meaning every week.
type RegularHolidays struct {
	Mode  string `json:"mode"`
	Days  []int  `json:"days,omitempty"`
	Weeks []int  `json:"weeks,omitempty"`
}

// TemporaryHoliday is a one-off closure range, dates as YYYY-MM-DD.
type TemporaryHoliday struct {
	Enabled   bool   `json:"enabled"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// OpeningHours is one schedule block on the wire. Days are weekday numbers,
// 0=Sunday; times are HH:MM.
type OpeningHours struct {
	ID        int64  `json:"id,omitempty"`
	Days      []int  `json:"days"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// MenuCategory is a category with its ordered items.
type MenuCategory struct {
	ID    int64      `json:"id"`
	Name  string     `json:"name"`
	Items []MenuItem `json:"items"`
}

// MenuItem is a single menu entry. Price is in the minor currency unit.
type MenuItem struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	ImageURL string `json:"image_url,omitempty"`
}

// CategoryHeader carries category order and names for the replace call. A
// zero ID marks a category the backend has not seen yet.
type CategoryHeader struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

// SaveMenuItemRequest creates (nil ID) or updates a single item.
type SaveMenuItemRequest struct {
	ID           *int64 `json:"id,omitempty"`
	CategoryID   int64  `json:"category_id"`
	Name         string `json:"name"`
	Price        int64  `json:"price"`
	ImageRef     string `json:"image_ref,omitempty"`
	ImageChanged bool   `json:"image_changed"`
}

// StoreImage is one store photo on the wire.
type StoreImage struct {
	ID     int64  `json:"id"`
	URL    string `json:"url"`
	IsMain bool   `json:"is_main"`
}

// StoreImageUpdate replaces the photo list. Existing images carry their
// server id; new images carry the upload source instead.
type StoreImageUpdate struct {
	ID     *int64 `json:"id,omitempty"`
	Source string `json:"source,omitempty"`
	IsMain bool   `json:"is_main"`
}
