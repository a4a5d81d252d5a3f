package model

type Document struct {
	BaseModel
	// 业务主键：卷宗编号，全局唯一
	NumeroDossier string `gorm:"uniqueIndex;size:100;not null" json:"numero_dossier"`
	NumeroCarton  string `gorm:"size:100;not null" json:"numero_carton"`
	Modele        string `gorm:"size:100;not null" json:"modele"`

	// 🔗 关联状态行 (一对多)，删除文档时级联删除
	States []DocumentState `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE" json:"states"`
}
