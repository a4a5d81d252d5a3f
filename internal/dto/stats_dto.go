package dto

// DossierCount 按 numero_dossier 分组的文档数
// numero_dossier 本身唯一，所以每组恒等于 1，保留的是历史版本的原始口径
type DossierCount struct {
	NumeroDossier string `json:"numero_dossier"`
	Count         int64  `json:"count"`
}

type StatsResp struct {
	TotalDocuments int64          `json:"total_documents"`
	TotalStates    int64          `json:"total_states"`
	ParDossier     []DossierCount `json:"par_dossier"`
}
