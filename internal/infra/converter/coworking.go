package converter

import (
	"coworking-pos/internal/domain/coworking"
	"coworking-pos/internal/domain/payment"
	"coworking-pos/internal/infra/sqlc"
	"coworking-pos/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

func CoworkingToCreateParams(s *coworking.Session) sqlc.CreateCoworkingSessionParams {
	return sqlc.CreateCoworkingSessionParams{
		ID:           s.ID(),
		CustomerName: s.CustomerName(),
		StartedAt:    pgconv.TimeToPgtype(s.StartedAt()),
		HourlyRate:   pgconv.DecimalToNumeric(s.HourlyRate()),
		Total:        pgconv.DecimalToNumeric(s.Total()),
		Status:       string(s.Status()),
		CreatedBy:    s.CreatedBy(),
	}
}

func CoworkingToCloseParams(s *coworking.Session) sqlc.CloseCoworkingSessionParams {
	method := pgtype.Text{Valid: false}
	if m := s.Method(); m != nil {
		method = pgconv.StringToPgtype(m.String())
	}
	return sqlc.CloseCoworkingSessionParams{
		ID:            s.ID(),
		EndedAt:       pgconv.TimePtrToPgtype(s.EndedAt()),
		Total:         pgconv.DecimalToNumeric(s.Total()),
		PaymentMethod: method,
	}
}

func CoworkingFromRow(row sqlc.CoworkingSessions) (*coworking.Session, error) {
	rate, err := pgconv.DecimalFromNumeric(row.HourlyRate)
	if err != nil {
		return nil, err
	}
	total, err := pgconv.DecimalFromNumeric(row.Total)
	if err != nil {
		return nil, err
	}
	status, err := coworking.NewStatus(row.Status)
	if err != nil {
		return nil, err
	}

	var method *payment.Method
	if s := pgconv.StringPtrFromPgtype(row.PaymentMethod); s != nil {
		m, err := payment.NewMethod(*s)
		if err != nil {
			return nil, err
		}
		method = &m
	}

	return coworking.ReconstructSession(
		row.ID,
		row.CustomerName,
		pgconv.TimeFromPgtype(row.StartedAt),
		pgconv.TimePtrFromPgtype(row.EndedAt),
		rate,
		total,
		method,
		status,
		row.CreatedBy,
	), nil
}
