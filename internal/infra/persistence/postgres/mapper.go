package postgres

import (
	"encoding/json"

	"resback/internal/domain/entity"
	"resback/internal/infra/persistence/model"
)

// Mapping between persistence models and domain entities. Models never leave
// this package; entities never carry GORM tags.

func toNormalUserDomain(m *model.NormalUserModel) *entity.NormalUser {
	return &entity.NormalUser{
		ID:           m.ID,
		Provider:     entity.OAuthProvider(m.OAuthProvider),
		OAuthID:      m.OAuthID,
		Nickname:     m.Nickname,
		Picture:      m.Picture,
		RefreshToken: m.RefreshToken,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromNormalUserDomain(u *entity.NormalUser) *model.NormalUserModel {
	return &model.NormalUserModel{
		ID:            u.ID,
		OAuthProvider: u.Provider.String(),
		OAuthID:       u.OAuthID,
		Nickname:      u.Nickname,
		Picture:       u.Picture,
		RefreshToken:  u.RefreshToken,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func toSeniorUserDomain(m *model.SeniorUserModel) *entity.SeniorUser {
	var careers []string
	// A malformed careers column degrades to an empty list rather than
	// failing the whole read.
	_ = json.Unmarshal([]byte(m.RepresentativeCareers), &careers)

	return &entity.SeniorUser{
		ID:                    m.ID,
		Email:                 m.Email,
		PasswordHash:          m.Password,
		Name:                  m.Name,
		Phone:                 m.Phone,
		Nickname:              m.Nickname,
		Picture:               m.Picture,
		Major:                 m.Major,
		ExperienceYears:       m.ExperienceYears,
		MentoringPrice:        m.MentoringPrice,
		RepresentativeCareers: careers,
		Description:           m.Description,
		MentoringMethod:       entity.MentoringMethod(m.MentoringMethodID),
		MentoringStatus:       m.MentoringStatus,
		MentoringAlwaysOn:     m.MentoringAlwaysOn,
		EmailVerified:         m.EmailVerified,
		RefreshToken:          m.RefreshToken,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}

func fromSeniorUserDomain(u *entity.SeniorUser) *model.SeniorUserModel {
	careers := u.RepresentativeCareers
	if careers == nil {
		careers = []string{}
	}
	encoded, _ := json.Marshal(careers)

	return &model.SeniorUserModel{
		ID:                    u.ID,
		Email:                 u.Email,
		Password:              u.PasswordHash,
		Name:                  u.Name,
		Phone:                 u.Phone,
		Nickname:              u.Nickname,
		Picture:               u.Picture,
		Major:                 u.Major,
		ExperienceYears:       u.ExperienceYears,
		MentoringPrice:        u.MentoringPrice,
		RepresentativeCareers: string(encoded),
		Description:           u.Description,
		MentoringMethodID:     uint32(u.MentoringMethod),
		MentoringStatus:       u.MentoringStatus,
		MentoringAlwaysOn:     u.MentoringAlwaysOn,
		EmailVerified:         u.EmailVerified,
		RefreshToken:          u.RefreshToken,
		CreatedAt:             u.CreatedAt,
		UpdatedAt:             u.UpdatedAt,
	}
}

func toMentoringTimeDomain(m *model.MentoringTimeModel) entity.MentoringTime {
	return entity.MentoringTime{ID: m.ID, Hour: m.Hour}
}

func toMentoringOrderDomain(m *model.MentoringOrderModel) *entity.MentoringOrder {
	order := &entity.MentoringOrder{
		ID:        m.ID,
		BuyerID:   m.BuyerID,
		SellerID:  m.SellerID,
		Method:    entity.MentoringMethod(m.MethodID),
		Price:     m.Price,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
	if m.Time != nil {
		order.Time = toMentoringTimeDomain(m.Time)
	} else {
		order.Time = entity.MentoringTime{ID: m.TimeID}
	}

	return order
}

func toVerificationDomain(m *model.EmailVerificationModel) *entity.EmailVerification {
	return &entity.EmailVerification{
		ID:        m.ID,
		SeniorID:  m.SeniorID,
		Code:      m.Code,
		CreatedAt: m.CreatedAt,
	}
}
