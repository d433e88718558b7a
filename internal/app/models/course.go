package models

// Schedule describes when a course meets.
type Schedule struct {
	StartDate string   `json:"startDate" db:"start_date"`
	EndDate   string   `json:"endDate" db:"end_date"`
	Days      []string `json:"days" db:"days"`
	TimeStart string   `json:"timeStart" db:"time_start"`
	TimeEnd   string   `json:"timeEnd" db:"time_end"`
}

// CourseInstructor is the instructor summary embedded in a course.
type CourseInstructor struct {
	ID     string  `json:"id" db:"instructor_id"`
	Name   string  `json:"name" db:"instructor_name"`
	Avatar *string `json:"avatar,omitempty" db:"instructor_avatar"`
}

// Course represents a bookable course in the catalog.
//
// EnrolledCount counts confirmed enrollments only and is mutated exclusively
// by the enrollment service. A course is full when EnrolledCount >= Capacity.
type Course struct {
	ID               string           `json:"id" db:"id"`
	Title            string           `json:"title" db:"title"`
	Description      string           `json:"description" db:"description"`
	ShortDescription string           `json:"shortDescription" db:"short_description"`
	Image            string           `json:"image" db:"image"`
	Price            float64          `json:"price" db:"price"`       // >= 0
	Duration         int              `json:"duration" db:"duration"` // hours, > 0
	Capacity         int              `json:"capacity" db:"capacity"` // > 0
	EnrolledCount    int              `json:"enrolledCount" db:"enrolled_count"`
	Category         string           `json:"category" db:"category"`
	Level            CourseLevel      `json:"level" db:"level"`
	Schedule         Schedule         `json:"schedule"`
	Instructor       CourseInstructor `json:"instructor"`
	Tags             []string         `json:"tags" db:"tags"`
	Rating           float64          `json:"rating" db:"rating"` // 0..5
	ReviewCount      int              `json:"reviewCount" db:"review_count"`
}

// IsFull reports whether the course has no confirmed seats left.
func (c Course) IsFull() bool {
	return c.EnrolledCount >= c.Capacity
}
