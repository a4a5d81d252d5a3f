package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yousseftayari/ElectroDoc/internal/data"
	"github.com/yousseftayari/ElectroDoc/internal/dto"
	"github.com/yousseftayari/ElectroDoc/internal/model"

	"gorm.io/gorm"
)

const DefaultPageSize = 10

// 仅 BRK 状态挂子状态
const StateTypeBRK = "BRK"

type DocumentService struct {
	Data *data.Data
}

func NewDocumentService(data *data.Data) *DocumentService {
	return &DocumentService{Data: data}
}

// List 分页查询文档列表
// search 非空时在 numero_dossier / numero_carton / modele 三个字段做子串匹配 (OR)
func (s *DocumentService) List(ctx context.Context, search string, page, pageSize int) (*dto.DocumentListResp, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	db := s.Data.DB.WithContext(ctx).Model(&model.Document{})
	if search != "" {
		like := "%" + search + "%"
		db = db.Where("numero_dossier LIKE ? OR numero_carton LIKE ? OR modele LIKE ?", like, like, like)
	}

	// 1. 先数总数再取当前页
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, err
	}

	var docs []model.Document
	if err := db.Preload("States").
		Order("id").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&docs).Error; err != nil {
		return nil, err
	}

	resp := &dto.DocumentListResp{
		Documents:  make([]dto.DocumentResp, 0, len(docs)),
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}
	for _, d := range docs {
		resp.Documents = append(resp.Documents, toDocumentResp(&d))
	}
	return resp, nil
}

// Search 不分页的全量查询，给外部客户端的 /api/documents 用
// 过滤规则与 List 相同
func (s *DocumentService) Search(ctx context.Context, search string) ([]dto.DocumentResp, error) {
	db := s.Data.DB.WithContext(ctx).Model(&model.Document{})
	if search != "" {
		like := "%" + search + "%"
		db = db.Where("numero_dossier LIKE ? OR numero_carton LIKE ? OR modele LIKE ?", like, like, like)
	}

	var docs []model.Document
	if err := db.Preload("States").Order("id").Find(&docs).Error; err != nil {
		return nil, err
	}

	result := make([]dto.DocumentResp, 0, len(docs))
	for _, d := range docs {
		result = append(result, toDocumentResp(&d))
	}
	return result, nil
}

// Get 取单个文档 (带状态行)，编辑页回显和 API 嵌套都用它
func (s *DocumentService) Get(ctx context.Context, id uint) (*dto.DocumentResp, error) {
	var doc model.Document
	err := s.Data.DB.WithContext(ctx).Preload("States").First(&doc, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: document %d", ErrNotFound, id)
		}
		return nil, err
	}
	r := toDocumentResp(&doc)
	return &r, nil
}

// Create 新建文档及其状态行
// 文档和状态的多条插入放在同一个事务里，避免写到一半留下残缺行
func (s *DocumentService) Create(ctx context.Context, req dto.DocumentReq) (*dto.DocumentResp, error) {
	numeroDossier := strings.TrimSpace(req.NumeroDossier)
	numeroCarton := strings.TrimSpace(req.NumeroCarton)
	modele := strings.TrimSpace(req.Modele)

	// 1. 空值校验
	if numeroDossier == "" || numeroCarton == "" || modele == "" {
		return nil, fmt.Errorf("%w: numero_dossier, numero_carton and modele are required", ErrValidation)
	}

	doc := model.Document{
		NumeroDossier: numeroDossier,
		NumeroCarton:  numeroCarton,
		Modele:        modele,
	}

	err := s.Data.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 2. 业务主键查重
		var count int64
		if err := tx.Model(&model.Document{}).
			Where("numero_dossier = ?", numeroDossier).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: numero_dossier already exists", ErrConflict)
		}

		// 3. 插入文档
		if err := tx.Create(&doc).Error; err != nil {
			return err
		}

		// 4. 插入状态行
		states := buildStates(doc.ID, req.States)
		if len(states) > 0 {
			if err := tx.Create(&states).Error; err != nil {
				return err
			}
			doc.States = states
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r := toDocumentResp(&doc)
	return &r, nil
}

// Update 覆盖三个标量字段并整组替换状态行
// 旧状态行全部删除再插入新的一组，旧的状态 id 在编辑后全部失效
func (s *DocumentService) Update(ctx context.Context, id uint, req dto.DocumentReq) (*dto.DocumentResp, error) {
	var doc model.Document

	err := s.Data.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. 目标必须存在
		if err := tx.First(&doc, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: document %d", ErrNotFound, id)
			}
			return err
		}

		// 2. 覆盖标量字段
		doc.NumeroDossier = strings.TrimSpace(req.NumeroDossier)
		doc.NumeroCarton = strings.TrimSpace(req.NumeroCarton)
		doc.Modele = strings.TrimSpace(req.Modele)
		if err := tx.Save(&doc).Error; err != nil {
			return err
		}

		// 3. 整组替换：先物理删除旧状态行
		if err := tx.Unscoped().
			Where("document_id = ?", doc.ID).
			Delete(&model.DocumentState{}).Error; err != nil {
			return err
		}

		// 4. 再插入新的一组
		states := buildStates(doc.ID, req.States)
		if len(states) > 0 {
			if err := tx.Create(&states).Error; err != nil {
				return err
			}
		}
		doc.States = states
		return nil
	})
	if err != nil {
		return nil, err
	}

	r := toDocumentResp(&doc)
	return &r, nil
}

// Delete 删除文档，级联删除其全部状态行
func (s *DocumentService) Delete(ctx context.Context, id uint) error {
	return s.Data.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var doc model.Document
		if err := tx.First(&doc, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: document %d", ErrNotFound, id)
			}
			return err
		}

		// 不依赖驱动层的外键级联，显式删子再删父
		if err := tx.Unscoped().
			Where("document_id = ?", doc.ID).
			Delete(&model.DocumentState{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&doc).Error
	})
}

// AddState 给已有文档追加一条状态行
// state_type 不做枚举校验 (开放集合)
func (s *DocumentService) AddState(ctx context.Context, documentID uint, req dto.AddStateReq) error {
	db := s.Data.DB.WithContext(ctx)

	var doc model.Document
	if err := db.First(&doc, documentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: document %d", ErrNotFound, documentID)
		}
		return err
	}

	state := model.DocumentState{
		DocumentID: doc.ID,
		StateType:  req.StateType,
		SubState:   req.SubState,
		Quantity:   parseQuantity(req.Quantity),
	}
	return db.Create(&state).Error
}

// DeleteState 删除单条状态行，不动父文档
func (s *DocumentService) DeleteState(ctx context.Context, stateID uint) error {
	db := s.Data.DB.WithContext(ctx)

	var state model.DocumentState
	if err := db.First(&state, stateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: state %d", ErrNotFound, stateID)
		}
		return err
	}
	return db.Unscoped().Delete(&state).Error
}

// Stats 汇总统计
// par_dossier 按 numero_dossier 分组，该字段唯一所以每组恒为 1，
// 这是历史版本就有的口径，先原样保留
func (s *DocumentService) Stats(ctx context.Context) (*dto.StatsResp, error) {
	db := s.Data.DB.WithContext(ctx)

	resp := &dto.StatsResp{}
	if err := db.Model(&model.Document{}).Count(&resp.TotalDocuments).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.DocumentState{}).Count(&resp.TotalStates).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&model.Document{}).
		Select("numero_dossier, count(*) as count").
		Group("numero_dossier").
		Order("numero_dossier").
		Scan(&resp.ParDossier).Error; err != nil {
		return nil, err
	}
	return resp, nil
}

// parseQuantity 表单数量：缺失或非数字一律按 1
func parseQuantity(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return n
}

// buildStates 把提交的状态条目转成持久化行
// 子状态只在 BRK 时拼接落库，其他类型一律丢弃
func buildStates(documentID uint, entries []dto.StateEntryReq) []model.DocumentState {
	states := make([]model.DocumentState, 0, len(entries))
	for _, e := range entries {
		subState := ""
		if e.StateType == StateTypeBRK && len(e.SubStates) > 0 {
			subState = strings.Join(e.SubStates, ",")
		}
		states = append(states, model.DocumentState{
			DocumentID: documentID,
			StateType:  e.StateType,
			SubState:   subState,
			Quantity:   parseQuantity(e.Quantity),
		})
	}
	return states
}

func toDocumentResp(doc *model.Document) dto.DocumentResp {
	resp := dto.DocumentResp{
		ID:            doc.ID,
		NumeroDossier: doc.NumeroDossier,
		NumeroCarton:  doc.NumeroCarton,
		Modele:        doc.Modele,
		States:        make([]dto.StateResp, 0, len(doc.States)),
		CreatedAt:     doc.CreatedAt,
	}
	for _, st := range doc.States {
		sr := dto.StateResp{
			ID:        st.ID,
			StateType: st.StateType,
			Quantity:  st.Quantity,
		}
		// 拆分只发生在这条持久化边界上
		if st.SubState != "" {
			sr.SubStates = strings.Split(st.SubState, ",")
		}
		resp.States = append(resp.States, sr)
	}
	return resp
}
