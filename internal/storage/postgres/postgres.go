package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"eventhub/internal/config"
	"eventhub/internal/models"
	"eventhub/internal/storage"
)

// Postgres error codes we map to storage sentinels.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

type Storage struct {
	DB *sql.DB
}

func InitDB(dbCfg *config.Database) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	return &Storage{DB: db}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func (s *Storage) CreateUser(email, passwordHash, fullName string) (*models.User, error) {
	query := `
		INSERT INTO users (id, email, password_hash, full_name)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	user := models.User{
		ID:       uuid.New().String(),
		Email:    email,
		FullName: fullName,
	}

	err := s.DB.QueryRow(query, user.ID, email, passwordHash, fullName).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, storage.ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

func (s *Storage) GetUserByEmail(email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, full_name, avatar_url, created_at, updated_at
		FROM users
		WHERE email = $1`

	var user models.User
	err := s.DB.QueryRow(query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.AvatarURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (s *Storage) GetUserByID(id string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, full_name, avatar_url, created_at, updated_at
		FROM users
		WHERE id = $1`

	var user models.User
	err := s.DB.QueryRow(query, id).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.AvatarURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (s *Storage) CreateEvent(userID string, in models.EventCreate) (*models.Event, error) {
	isPublic := true
	if in.IsPublic != nil {
		isPublic = *in.IsPublic
	}

	query := `
		INSERT INTO events (id, title, description, location, start_time, end_time,
		                    is_public, max_attendees, image_url, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	event := models.Event{
		ID:           uuid.New().String(),
		Title:        in.Title,
		Description:  in.Description,
		Location:     in.Location,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		IsPublic:     isPublic,
		MaxAttendees: in.MaxAttendees,
		ImageURL:     in.ImageURL,
		CreatedBy:    userID,
	}

	err := s.DB.QueryRow(query,
		event.ID,
		event.Title,
		event.Description,
		event.Location,
		event.StartTime,
		event.EndTime,
		event.IsPublic,
		event.MaxAttendees,
		event.ImageURL,
		event.CreatedBy,
	).Scan(&event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return &event, nil
}

const eventColumns = `
	e.id, e.title, e.description, e.location, e.start_time, e.end_time,
	e.is_public, e.max_attendees, e.image_url, e.created_by, e.created_at, e.updated_at,
	(SELECT COUNT(*) FROM rsvps r WHERE r.event_id = e.id AND r.status = 'going') AS attendees_count`

func scanEvent(row interface{ Scan(...any) error }) (*models.Event, error) {
	var event models.Event
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Location,
		&event.StartTime,
		&event.EndTime,
		&event.IsPublic,
		&event.MaxAttendees,
		&event.ImageURL,
		&event.CreatedBy,
		&event.CreatedAt,
		&event.UpdatedAt,
		&event.AttendeesCount,
	)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *Storage) GetEvent(id string) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events e WHERE e.id = $1`

	event, err := scanEvent(s.DB.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return event, nil
}

func (s *Storage) GetEventWithRSVPs(id string) (*models.Event, []models.RSVP, error) {
	event, err := s.GetEvent(id)
	if err != nil {
		return nil, nil, err
	}

	query := `
		SELECT id, event_id, user_id, status, created_at, updated_at
		FROM rsvps
		WHERE event_id = $1
		ORDER BY updated_at DESC`

	rows, err := s.DB.Query(query, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get rsvps: %w", err)
	}
	defer rows.Close()

	var rsvps []models.RSVP
	for rows.Next() {
		var r models.RSVP
		err = rows.Scan(
			&r.ID,
			&r.EventID,
			&r.UserID,
			&r.Status,
			&r.CreatedAt,
			&r.UpdatedAt,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan rsvp: %w", err)
		}
		rsvps = append(rsvps, r)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating rsvps: %w", err)
	}

	return event, rsvps, nil
}

// GetAllEvents returns events visible to the viewer: public ones plus
// the viewer's own. The attendance count is recomputed from the rsvps
// table on every read.
func (s *Storage) GetAllEvents(viewerID string) ([]models.Event, error) {
	query := `SELECT ` + eventColumns + `
		FROM events e
		WHERE e.is_public = true OR e.created_by = $1
		ORDER BY e.start_time ASC`

	rows, err := s.DB.Query(query, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, *event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

func (s *Storage) UpdateEvent(eventID, userID string, in models.EventUpdate) (*models.Event, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var createdBy string
	err = tx.QueryRow(`SELECT created_by FROM events WHERE id = $1`, eventID).Scan(&createdBy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to check event: %w", err)
	}

	if createdBy != userID {
		return nil, storage.ErrNotOwner
	}

	// Nil fields keep their current value. Clearing max_attendees is
	// not supported through PATCH.
	query := `
		UPDATE events SET
			title         = COALESCE($2, title),
			description   = COALESCE($3, description),
			location      = COALESCE($4, location),
			start_time    = COALESCE($5, start_time),
			end_time      = COALESCE($6, end_time),
			is_public     = COALESCE($7, is_public),
			max_attendees = COALESCE($8, max_attendees),
			image_url     = COALESCE($9, image_url),
			updated_at    = NOW()
		WHERE id = $1`

	_, err = tx.Exec(query,
		eventID,
		in.Title,
		in.Description,
		in.Location,
		in.StartTime,
		in.EndTime,
		in.IsPublic,
		in.MaxAttendees,
		in.ImageURL,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return s.GetEvent(eventID)
}

func (s *Storage) DeleteEvent(eventID, userID string) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var createdBy string
	err = tx.QueryRow(`SELECT created_by FROM events WHERE id = $1`, eventID).Scan(&createdBy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrEventNotFound
		}
		return fmt.Errorf("failed to check event: %w", err)
	}

	if createdBy != userID {
		return storage.ErrNotOwner
	}

	if _, err = tx.Exec(`DELETE FROM events WHERE id = $1`, eventID); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	return tx.Commit()
}

// UpsertRSVP records the user's response, overwriting any prior one
// for the same event. Capacity gating happens in the handler from the
// authoritative RSVP list before this is called.
func (s *Storage) UpsertRSVP(eventID, userID, status string) (*models.RSVP, error) {
	query := `
		INSERT INTO rsvps (id, event_id, user_id, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (event_id, user_id) DO UPDATE SET
			status     = EXCLUDED.status,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	r := models.RSVP{
		EventID: eventID,
		UserID:  userID,
		Status:  status,
	}

	err := s.DB.QueryRow(query, uuid.New().String(), eventID, userID, status).
		Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
			return nil, storage.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to upsert rsvp: %w", err)
	}

	return &r, nil
}

func (s *Storage) GetUserRSVP(eventID, userID string) (*models.RSVP, error) {
	query := `
		SELECT id, event_id, user_id, status, created_at, updated_at
		FROM rsvps
		WHERE event_id = $1 AND user_id = $2`

	var r models.RSVP
	err := s.DB.QueryRow(query, eventID, userID).Scan(
		&r.ID,
		&r.EventID,
		&r.UserID,
		&r.Status,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrRSVPNotFound
		}
		return nil, fmt.Errorf("failed to get rsvp: %w", err)
	}

	return &r, nil
}
