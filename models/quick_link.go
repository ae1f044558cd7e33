package models

// QuickLink is a footer/home shortcut (social profile, CV download, ...)
type QuickLink struct {
	ID         uint   `json:"id" db:"id" gorm:"primaryKey"`
	Title      string `json:"title" db:"title" gorm:"type:varchar(50);not null"`
	URL        string `json:"url" db:"url" gorm:"type:text;not null"`
	IconClass  string `json:"icon_class" db:"icon_class" gorm:"type:varchar(50)"`
	Color      string `json:"color" db:"color" gorm:"type:varchar(20);not null;default:'#3498db'"`
	IsDownload bool   `json:"is_download" db:"is_download" gorm:"not null;default:false"`
	Order      uint   `json:"order" db:"display_order" gorm:"column:display_order;not null;default:0;index"`
}
