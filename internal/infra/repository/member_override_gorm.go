package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type MemberOverrideGormRepository struct {
	db *gorm.DB
}

func NewMemberOverrideGormRepository(db *gorm.DB) *MemberOverrideGormRepository {
	return &MemberOverrideGormRepository{db: db}
}

// ListOverrides groups every stored override by service variation id.
func (r *MemberOverrideGormRepository) ListOverrides(
	ctx context.Context,
) (map[string][]booking.MemberAssignment, error) {

	var rows []models.MemberOverride
	if err := r.db.WithContext(ctx).
		Order("service_variation_id ASC, team_member_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string][]booking.MemberAssignment, len(rows))
	for _, row := range rows {
		out[row.ServiceVariationID] = append(out[row.ServiceVariationID], booking.MemberAssignment{
			TeamMemberID:  row.TeamMemberID,
			PriceOverride: row.PriceAmount,
			Available:     row.Available,
		})
	}
	return out, nil
}

// Compile-time check
var _ booking.MemberOverrideRepository = (*MemberOverrideGormRepository)(nil)
