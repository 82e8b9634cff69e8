package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/train-schedule-microservice/internal/access"
	"github.com/train-schedule-microservice/internal/domain"
	"github.com/train-schedule-microservice/internal/domain/repository"
	"github.com/train-schedule-microservice/internal/pkg/errors"
	"github.com/train-schedule-microservice/internal/pkg/rowtree"
)

type trainRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewTrainRepository(db *DB) repository.TrainRepository {
	return &trainRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *trainRepository) Create(ctx context.Context, number string) (*domain.Train, error) {
	var train domain.Train
	err := sqlx.GetContext(ctx, r.db.ext(ctx), &train, `
		INSERT INTO trains (number) VALUES ($1)
		RETURNING id, number, created_at, updated_at
	`, number)
	if isPgError(err, pgUniqueViolation) {
		return nil, errors.ErrTrainConflict
	}
	if err != nil {
		r.logger.Error("Failed to create train", zap.String("number", number), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &train, nil
}

func (r *trainRepository) GetByID(ctx context.Context, id int64) (*domain.Train, error) {
	var train domain.Train
	err := sqlx.GetContext(ctx, r.db.ext(ctx), &train, `
		SELECT id, number, created_at, updated_at FROM trains WHERE id = $1
	`, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrTrainNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get train by ID", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &train, nil
}

func (r *trainRepository) Update(ctx context.Context, id int64, number string) error {
	res, err := r.db.ext(ctx).ExecContext(ctx, `
		UPDATE trains SET number = $1, updated_at = now() WHERE id = $2
	`, number, id)
	if isPgError(err, pgUniqueViolation) {
		return errors.ErrTrainConflict
	}
	if err != nil {
		r.logger.Error("Failed to update train", zap.Int64("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return errors.ErrTrainNotFound
	}
	return nil
}

func (r *trainRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ext(ctx).ExecContext(ctx, `DELETE FROM trains WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete train", zap.Int64("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return errors.ErrTrainNotFound
	}
	return nil
}

// trainListColumns are the dotted aliases the row-tree assembler folds on.
// The alias path mirrors the nested JSON shape the API returns.
var trainListColumns = []string{
	`t.id AS "id"`,
	`t.number AS "number"`,
	`r.id AS "trainRuns.id"`,
	`r.day AS "trainRuns.day"`,
	`r.train_id AS "trainRuns.trainId"`,
	`r.owner_user_id AS "trainRuns.ownerUserId"`,
	`pp.id AS "trainRuns.policePeople.id"`,
	`pp.name AS "trainRuns.policePeople.name"`,
	`pp.phone_number AS "trainRuns.policePeople.phoneNumber"`,
	`trpp.from_station_id AS "trainRuns.policePeople.fromStationId"`,
	`trpp.to_station_id AS "trainRuns.policePeople.toStationId"`,
	`rk.id AS "trainRuns.policePeople.rank.id"`,
	`rk.name AS "trainRuns.policePeople.rank.name"`,
	`pd.id AS "trainRuns.policePeople.policeDepartment.id"`,
	`pd.name AS "trainRuns.policePeople.policeDepartment.name"`,
}

func (r *trainRepository) ListRows(ctx context.Context, filter repository.TrainListFilter) ([]rowtree.Row, error) {
	if filter.Access != nil && filter.Access.Denied {
		return nil, nil
	}

	columns := trainListColumns
	if filter.IncludeLines {
		columns = append(append([]string{}, columns...),
			`l.id AS "lines.id"`,
			`l.name AS "lines.name"`)
	}

	builder := sq.Select(columns...).
		From("trains t").
		LeftJoin("train_runs r ON r.train_id = t.id").
		LeftJoin("train_run_police_people trpp ON trpp.train_run_id = r.id").
		LeftJoin("police_people pp ON pp.id = trpp.police_person_id").
		LeftJoin("ranks rk ON rk.id = pp.rank_id").
		LeftJoin("police_departments pd ON pd.id = pp.police_department_id")

	if filter.IncludeLines {
		builder = builder.
			LeftJoin("(SELECT DISTINCT train_id, line_id FROM line_station_trains) lst ON lst.train_id = t.id").
			LeftJoin("lines l ON l.id = lst.line_id")
	}

	if filter.Access != nil && filter.Access.Join == access.JoinRequired {
		// The ownership predicate may reference any grantable train field,
		// so the join exposes them all under one alias.
		predSQL, predArgs, err := access.RenderSQL(filter.Access.Predicate, "own")
		if err != nil {
			return nil, errors.ErrInternalServer
		}
		builder = builder.Join(
			`(SELECT tr.id, tr.number, ut.owner_user_id
			  FROM trains tr
			  JOIN user_trains ut ON ut.train_id = tr.id) own
			 ON own.id = t.id AND `+predSQL, predArgs...)
	}

	if filter.TrainIDs != nil {
		if len(filter.TrainIDs) == 0 {
			return nil, nil
		}
		builder = builder.Where(sq.Eq{"t.id": filter.TrainIDs})
	}
	if filter.LineID != 0 {
		builder = builder.Where(
			"EXISTS (SELECT 1 FROM line_station_trains x WHERE x.train_id = t.id AND x.line_id = ?)",
			filter.LineID)
	}

	query, args, err := builder.
		OrderBy("t.id", "r.id", "pp.id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		r.logger.Error("Failed to build train listing query", zap.Error(err))
		return nil, errors.ErrInternalServer
	}

	return r.queryRows(ctx, query, args)
}

var runListColumns = []string{
	`r.id AS "id"`,
	`r.day AS "day"`,
	`r.train_id AS "trainId"`,
	`r.owner_user_id AS "ownerUserId"`,
	`t.id AS "train.id"`,
	`t.number AS "train.number"`,
	`pp.id AS "policePeople.id"`,
	`pp.name AS "policePeople.name"`,
	`pp.phone_number AS "policePeople.phoneNumber"`,
	`trpp.from_station_id AS "policePeople.fromStationId"`,
	`trpp.to_station_id AS "policePeople.toStationId"`,
	`rk.id AS "policePeople.rank.id"`,
	`rk.name AS "policePeople.rank.name"`,
	`pd.id AS "policePeople.policeDepartment.id"`,
	`pd.name AS "policePeople.policeDepartment.name"`,
}

func (r *trainRepository) ListRunRows(ctx context.Context, filter repository.RunListFilter) ([]rowtree.Row, error) {
	if filter.Access != nil && filter.Access.Denied {
		return nil, nil
	}

	builder := sq.Select(runListColumns...).
		From("train_runs r").
		Join("trains t ON t.id = r.train_id").
		LeftJoin("train_run_police_people trpp ON trpp.train_run_id = r.id").
		LeftJoin("police_people pp ON pp.id = trpp.police_person_id").
		LeftJoin("ranks rk ON rk.id = pp.rank_id").
		LeftJoin("police_departments pd ON pd.id = pp.police_department_id")

	// Run conditions reference columns on train_runs itself, so the
	// predicate lowers to a plain WHERE regardless of join mode.
	if filter.Access != nil {
		if lowered := access.Sqlizer(filter.Access.Predicate, "r"); lowered != nil {
			builder = builder.Where(lowered)
		}
	}
	if filter.TrainID != 0 {
		builder = builder.Where(sq.Eq{"r.train_id": filter.TrainID})
	}
	if filter.Day != "" {
		builder = builder.Where(sq.Eq{"r.day": filter.Day})
	}

	query, args, err := builder.
		OrderBy("r.id", "pp.id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		r.logger.Error("Failed to build run listing query", zap.Error(err))
		return nil, errors.ErrInternalServer
	}

	return r.queryRows(ctx, query, args)
}

func (r *trainRepository) queryRows(ctx context.Context, query string, args []any) ([]rowtree.Row, error) {
	rows, err := r.db.ext(ctx).QueryxContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to execute listing query", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var result []rowtree.Row
	for rows.Next() {
		row := map[string]any{}
		if err := rows.MapScan(row); err != nil {
			r.logger.Error("Failed to scan listing row", zap.Error(err))
			return nil, errors.ErrDatabaseError
		}
		result = append(result, normalizeRow(row))
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Failed to iterate listing rows", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return result, nil
}

// normalizeRow converts driver byte slices to strings so rows compare and
// serialize cleanly after assembly.
func normalizeRow(row map[string]any) rowtree.Row {
	for k, v := range row {
		if b, ok := v.([]byte); ok {
			row[k] = string(b)
		}
	}
	return row
}

func (r *trainRepository) GetJourneyStops(ctx context.Context, stationIDs []int64) ([]domain.JourneyStop, error) {
	var stops []domain.JourneyStop
	err := sqlx.SelectContext(ctx, r.db.ext(ctx), &stops, `
		SELECT
			t.id   AS train_id,
			t.number AS train_number,
			l.id   AS line_id,
			l.name AS line_name,
			s.id   AS station_id,
			s.name AS station_name,
			ls.station_order,
			lst.arrival_time,
			lst.departure_time,
			lst.is_arrival,
			lst.is_departure
		FROM line_station_trains lst
		JOIN line_stations ls ON ls.id = lst.line_station_id
		JOIN stations s ON s.id = ls.station_id
		JOIN lines l ON l.id = lst.line_id
		JOIN trains t ON t.id = lst.train_id
		WHERE ls.station_id = ANY($1)
		ORDER BY t.id, ls.station_order
	`, stationIDs)
	if err != nil {
		r.logger.Error("Failed to load journey stops", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return stops, nil
}

func (r *trainRepository) UpsertStop(ctx context.Context, stop *domain.TrainStop) error {
	// The SELECT guards the invariant that the stop's line station belongs
	// to the stop's line. Zero affected rows means it does not.
	res, err := r.db.ext(ctx).ExecContext(ctx, `
		INSERT INTO line_station_trains
			(train_id, line_id, line_station_id, arrival_time, departure_time, is_arrival, is_departure)
		SELECT $1, $2, $3, $4, $5, $6, $7
		WHERE EXISTS (
			SELECT 1 FROM line_stations ls WHERE ls.id = $3 AND ls.line_id = $2
		)
		ON CONFLICT (train_id, line_station_id) DO UPDATE SET
			arrival_time   = EXCLUDED.arrival_time,
			departure_time = EXCLUDED.departure_time,
			is_arrival     = EXCLUDED.is_arrival,
			is_departure   = EXCLUDED.is_departure
	`, stop.TrainID, stop.LineID, stop.LineStationID,
		stop.ArrivalTime, stop.DepartureTime, stop.IsArrival, stop.IsDeparture)
	if isPgError(err, pgForeignKeyViolation) {
		return errors.ErrTrainNotFound
	}
	if err != nil {
		r.logger.Error("Failed to upsert train stop",
			zap.Int64("train_id", stop.TrainID),
			zap.Int64("line_station_id", stop.LineStationID),
			zap.Error(err))
		return errors.ErrDatabaseError
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"reason": "line station does not belong to the given line",
		})
	}
	return nil
}

func (r *trainRepository) DeleteStopsOnLine(ctx context.Context, trainID, lineID int64) (int, error) {
	ext := r.db.ext(ctx)

	_, err := ext.ExecContext(ctx, `
		DELETE FROM line_station_trains WHERE train_id = $1 AND line_id = $2
	`, trainID, lineID)
	if err != nil {
		r.logger.Error("Failed to delete train stops on line",
			zap.Int64("train_id", trainID),
			zap.Int64("line_id", lineID),
			zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	var remaining int
	err = sqlx.GetContext(ctx, ext, &remaining, `
		SELECT COUNT(*) FROM line_station_trains WHERE train_id = $1
	`, trainID)
	if err != nil {
		r.logger.Error("Failed to count remaining train stops", zap.Int64("train_id", trainID), zap.Error(err))
		return 0, errors.ErrDatabaseError
	}
	return remaining, nil
}
