package db_models

type City struct {
	BaseModel
	Name     string `gorm:"not null"`
	Slug     string `gorm:"uniqueIndex;not null"`
	Country  string
	Lat      float64
	Lng      float64
	Timezone string

	POIs []POI `gorm:"foreignKey:CityID"`
}
