package dto

// CourseFilterQuery binds the catalog filter query parameters. Omitted
// parameters impose no constraint.
type CourseFilterQuery struct {
	Category string   `form:"category" example:"Programming"`
	Level    string   `form:"level" binding:"omitempty,oneof=beginner intermediate advanced" example:"beginner"`
	MinPrice *float64 `form:"minPrice" example:"0"`
	MaxPrice *float64 `form:"maxPrice" example:"200"`
	Query    string   `form:"q" example:"go"`
}
