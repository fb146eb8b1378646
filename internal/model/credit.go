package model

// CastCredit 演员表中的一行（电影 × 演员 × 角色）
type CastCredit struct {
	RowID       uint   `json:"-" gorm:"primaryKey"`
	FilmID      int64  `json:"id_film" db:"id_film" gorm:"column:id_film;index"`
	CastID      int64  `json:"cast_id" db:"cast_id"`
	Character   string `json:"character" db:"character"`
	CreditID    string `json:"credit_id" db:"credit_id"`
	Gender      int64  `json:"gender" db:"gender"`
	PersonID    int64  `json:"id" db:"person_id"`
	Name        string `json:"name" db:"name" gorm:"index"`
	Order       int64  `json:"order" db:"billing_order" gorm:"column:billing_order"`
	ProfilePath string `json:"profile_path" db:"profile_path"`
}

// CrewCredit 幕后人员表中的一行
type CrewCredit struct {
	RowID       uint   `json:"-" gorm:"primaryKey"`
	FilmID      int64  `json:"id_film" db:"id_film" gorm:"column:id_film;index"`
	CreditID    string `json:"credit_id" db:"credit_id"`
	Department  string `json:"department" db:"department"`
	Gender      int64  `json:"gender" db:"gender"`
	PersonID    int64  `json:"id" db:"person_id"`
	Job         string `json:"job" db:"job" gorm:"index"`
	Name        string `json:"name" db:"name" gorm:"index"`
	ProfilePath string `json:"profile_path" db:"profile_path"`
}
