package domain

type Region struct {
	ID   int64  `json:"id" db:"id"`
	Key  string `json:"key" db:"key"`
	Name string `json:"name" db:"name"`
}

type Subregion struct {
	ID        int64  `json:"id" db:"id"`
	RegionID  int64  `json:"region_id" db:"region_id"`
	RegionKey string `json:"region_key" db:"region_key"`
	Key       string `json:"key" db:"key"`
	Name      string `json:"name" db:"name"`
}
