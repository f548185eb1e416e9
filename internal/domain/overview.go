package domain

// TriggerKey - отпечаток текущего вида для подавления повторного показа
// обзора на той же сцене
type TriggerKey string

// Overview - полезная нагрузка обзора "фотографии рядом": все видимые
// отдельные фотографии и примерный радиус охвата
type Overview struct {
	Photos         []Photo `json:"photos"`
	ApproxRadiusKm float64 `json:"approx_radius_km"`
}
