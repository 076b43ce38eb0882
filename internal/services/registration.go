package services

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openbims/bims-backend/internal/clients/gcp"
	"github.com/openbims/bims-backend/internal/clients/syncqueries"
	"github.com/openbims/bims-backend/internal/idgen"
	"github.com/openbims/bims-backend/internal/logger"
	pkgerrors "github.com/openbims/bims-backend/internal/pkg/errors"
	"github.com/openbims/bims-backend/internal/repos"
	"github.com/openbims/bims-backend/internal/types"
	"github.com/openbims/bims-backend/internal/utils"
)

// Locality pins the province/city/barangay every house registered through
// this deployment belongs to. Houses only vary by sitio and street.
type Locality struct {
	Province string
	City     string
	Barangay string
}

type PersonalInput struct {
	FirstName   string    `json:"per_fname"`
	MiddleName  string    `json:"per_mname"`
	LastName    string    `json:"per_lname"`
	Suffix      string    `json:"per_suffix"`
	DateOfBirth time.Time `json:"per_dob"`
	Sex         string    `json:"per_sex"`
	CivilStatus string    `json:"per_civil_status"`
	ContactNo   string    `json:"per_contact"`
}

type AddressInput struct {
	Province      string `json:"province"`
	City          string `json:"city"`
	Barangay      string `json:"barangay"`
	Street        string `json:"street"`
	Sitio         string `json:"sitio"`
	ExternalSitio string `json:"external_sitio"`
}

type AccountInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SoloFamilyInput creates a one-member family for the new resident. The
// family attaches either to one of the houses created in the same request
// (HouseIndex) or to an existing household (HouseholdID).
type SoloFamilyInput struct {
	BuildingType string  `json:"building_type"`
	HouseIndex   *int    `json:"house_index"`
	HouseholdID  *string `json:"household_id"`
}

type JoinFamilyInput struct {
	FamID string `json:"fam_id"`
	Role  string `json:"role"`
}

// FileUpload carries an inline file; Data is base64 on the wire.
type FileUpload struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

type BusinessInput struct {
	Name  string       `json:"bus_name"`
	Type  string       `json:"bus_type"`
	Files []FileUpload `json:"files"`
}

type RegisterResidentInput struct {
	// Either ExistingPerID points at a person already on record, or
	// Personal describes a new one.
	ExistingPerID *int
	Personal      *PersonalInput
	Addresses     []AddressInput
	VoterID       *string
	Account       *AccountInput
	// Houses are "Sitio - Street" strings; each becomes a household owned
	// by the new profile.
	Houses     []string
	SoloFamily *SoloFamilyInput
	JoinFamily *JoinFamilyInput
	Business   *BusinessInput
}

type RegisterResidentResult struct {
	Personal   *types.Personal        `json:"personal"`
	Profile    *types.ResidentProfile `json:"profile"`
	Households []*types.Household     `json:"households"`
	Family     *types.Family          `json:"family"`
	Business   *types.Business        `json:"business"`
}

type RegistrationService interface {
	// RegisterResident runs the full cascading registration in a single
	// transaction. Any failure, including the sibling sync call, rolls the
	// whole registration back.
	RegisterResident(ctx context.Context, staffID uuid.UUID, input RegisterResidentInput) (*RegisterResidentResult, error)
}

type registrationService struct {
	db                  *gorm.DB
	log                 *logger.Logger
	locality            Locality
	gen                 *idgen.Generator
	personalRepo        repos.PersonalRepo
	personalHistoryRepo repos.PersonalHistoryRepo
	sitioRepo           repos.SitioRepo
	addressRepo         repos.AddressRepo
	personalAddressRepo repos.PersonalAddressRepo
	profileRepo         repos.ResidentProfileRepo
	accountRepo         repos.AccountRepo
	householdRepo       repos.HouseholdRepo
	familyRepo          repos.FamilyRepo
	compositionRepo     repos.FamilyCompositionRepo
	businessRepo        repos.BusinessRepo
	businessFileRepo    repos.BusinessFileRepo
	sync                syncqueries.Client
	bucket              gcp.Bucket
	notifier            NotificationService
}

func NewRegistrationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	locality Locality,
	gen *idgen.Generator,
	personalRepo repos.PersonalRepo,
	personalHistoryRepo repos.PersonalHistoryRepo,
	sitioRepo repos.SitioRepo,
	addressRepo repos.AddressRepo,
	personalAddressRepo repos.PersonalAddressRepo,
	profileRepo repos.ResidentProfileRepo,
	accountRepo repos.AccountRepo,
	householdRepo repos.HouseholdRepo,
	familyRepo repos.FamilyRepo,
	compositionRepo repos.FamilyCompositionRepo,
	businessRepo repos.BusinessRepo,
	businessFileRepo repos.BusinessFileRepo,
	syncClient syncqueries.Client,
	bucket gcp.Bucket,
	notifier NotificationService,
) RegistrationService {
	return &registrationService{
		db:                  db,
		log:                 baseLog.With("service", "RegistrationService"),
		locality:            locality,
		gen:                 gen,
		personalRepo:        personalRepo,
		personalHistoryRepo: personalHistoryRepo,
		sitioRepo:           sitioRepo,
		addressRepo:         addressRepo,
		personalAddressRepo: personalAddressRepo,
		profileRepo:         profileRepo,
		accountRepo:         accountRepo,
		householdRepo:       householdRepo,
		familyRepo:          familyRepo,
		compositionRepo:     compositionRepo,
		businessRepo:        businessRepo,
		businessFileRepo:    businessFileRepo,
		sync:                syncClient,
		bucket:              bucket,
		notifier:            notifier,
	}
}

func (s *registrationService) RegisterResident(ctx context.Context, staffID uuid.UUID, input RegisterResidentInput) (*RegisterResidentResult, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	result := &RegisterResidentResult{}
	var uploadedKeys []string
	var notices []Notice

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		person, err := s.resolvePerson(ctx, tx, staffID, input)
		if err != nil {
			return err
		}
		result.Personal = person

		if err := s.linkAddresses(ctx, tx, person.PerID, input.Addresses); err != nil {
			return err
		}

		profile, err := s.createProfile(ctx, tx, person.PerID, staffID, input.VoterID)
		if err != nil {
			return err
		}
		result.Profile = profile

		if input.Account != nil {
			if err := s.createAccount(ctx, tx, profile.RpID, *input.Account); err != nil {
				return err
			}
		}

		households, err := s.createHouseholds(ctx, tx, profile.RpID, staffID, input.Houses)
		if err != nil {
			return err
		}
		result.Households = households

		family, err := s.placeInFamily(ctx, tx, profile.RpID, households, input)
		if err != nil {
			return err
		}
		result.Family = family

		if input.Business != nil {
			business, keys, err := s.createBusiness(ctx, tx, profile.RpID, staffID, *input.Business)
			uploadedKeys = keys
			if err != nil {
				return err
			}
			result.Business = business
		}

		// The sibling system mirrors every registration. A failed mirror
		// write aborts the transaction so the two systems never diverge.
		if s.sync != nil {
			if err := s.sync.PostQueries(ctx, "registration", syncPayload(result)); err != nil {
				return fmt.Errorf("mirror registration: %w", err)
			}
		}

		notices = s.buildNotices(ctx, tx, staffID, result, input)
		return nil
	})
	if err != nil {
		s.compensateUploads(ctx, uploadedKeys)
		return nil, err
	}

	s.notifier.EmitAll(ctx, notices)
	s.log.Info("Resident registered",
		"rp_id", result.Profile.RpID,
		"per_id", result.Personal.PerID,
		"households", len(result.Households))
	return result, nil
}

func (s *registrationService) validate(input RegisterResidentInput) error {
	if input.ExistingPerID == nil && input.Personal == nil {
		return fmt.Errorf("%w: personal details or an existing person id are required", pkgerrors.ErrInvalidArgument)
	}
	if input.ExistingPerID != nil && input.Personal != nil {
		return fmt.Errorf("%w: supply either personal details or an existing person id, not both", pkgerrors.ErrInvalidArgument)
	}
	if input.Personal != nil {
		if strings.TrimSpace(input.Personal.FirstName) == "" || strings.TrimSpace(input.Personal.LastName) == "" {
			return fmt.Errorf("%w: first and last name are required", pkgerrors.ErrInvalidArgument)
		}
		if input.Personal.DateOfBirth.IsZero() {
			return fmt.Errorf("%w: date of birth is required", pkgerrors.ErrInvalidArgument)
		}
	}
	if input.SoloFamily != nil && input.JoinFamily != nil {
		return fmt.Errorf("%w: a resident either starts a solo family or joins an existing one", pkgerrors.ErrInvalidArgument)
	}
	if input.SoloFamily != nil {
		solo := input.SoloFamily
		if solo.HouseIndex == nil && solo.HouseholdID == nil {
			return fmt.Errorf("%w: a solo family needs a house to attach to", pkgerrors.ErrInvalidArgument)
		}
		if solo.HouseIndex != nil && (*solo.HouseIndex < 0 || *solo.HouseIndex >= len(input.Houses)) {
			return fmt.Errorf("%w: house index out of range", pkgerrors.ErrInvalidArgument)
		}
		switch solo.BuildingType {
		case types.BuildingTypeOwner, types.BuildingTypeRenter, types.BuildingTypeSharer:
		default:
			return fmt.Errorf("%w: unknown building type %q", pkgerrors.ErrInvalidArgument, solo.BuildingType)
		}
	}
	if input.JoinFamily != nil {
		switch input.JoinFamily.Role {
		case types.CompositionRoleMother, types.CompositionRoleFather, types.CompositionRoleDependent, types.CompositionRoleIndependent:
		default:
			return fmt.Errorf("%w: unknown family role %q", pkgerrors.ErrInvalidArgument, input.JoinFamily.Role)
		}
	}
	if input.Account != nil {
		if input.Account.Username == "" || input.Account.Password == "" {
			return fmt.Errorf("%w: account username and password are required", pkgerrors.ErrInvalidArgument)
		}
	}
	if input.Business != nil && strings.TrimSpace(input.Business.Name) == "" {
		return fmt.Errorf("%w: business name is required", pkgerrors.ErrInvalidArgument)
	}
	if input.Business != nil && len(input.Business.Files) > 0 && s.bucket == nil {
		return fmt.Errorf("%w: file storage is not configured", pkgerrors.ErrInvalidArgument)
	}
	return nil
}

func (s *registrationService) resolvePerson(ctx context.Context, tx *gorm.DB, staffID uuid.UUID, input RegisterResidentInput) (*types.Personal, error) {
	if input.ExistingPerID != nil {
		existing, err := s.personalRepo.GetByIDs(ctx, tx, []int{*input.ExistingPerID})
		if err != nil {
			return nil, err
		}
		if len(existing) == 0 {
			return nil, fmt.Errorf("%w: person %d", pkgerrors.ErrNotFound, *input.ExistingPerID)
		}
		profiles, err := s.profileRepo.GetByPerIDs(ctx, tx, []int{*input.ExistingPerID})
		if err != nil {
			return nil, err
		}
		if len(profiles) > 0 {
			return nil, fmt.Errorf("%w: person %d already has profile %s", pkgerrors.ErrConflict, *input.ExistingPerID, profiles[0].RpID)
		}
		return existing[0], nil
	}

	p := input.Personal
	created, err := s.personalRepo.Create(ctx, tx, []*types.Personal{{
		FirstName:   strings.TrimSpace(p.FirstName),
		MiddleName:  strings.TrimSpace(p.MiddleName),
		LastName:    strings.TrimSpace(p.LastName),
		Suffix:      strings.TrimSpace(p.Suffix),
		DateOfBirth: p.DateOfBirth,
		Sex:         p.Sex,
		CivilStatus: p.CivilStatus,
		ContactNo:   p.ContactNo,
		Status:      "Active",
	}})
	if err != nil {
		return nil, err
	}
	person := created[0]

	// Version 1 anchors the record: address links and later updates resolve
	// against it.
	snapshot, err := snapshotPersonal(person)
	if err != nil {
		return nil, err
	}
	_, err = s.personalHistoryRepo.Create(ctx, tx, []*types.PersonalHistory{{
		ID:        uuid.New(),
		PerID:     person.PerID,
		HistoryID: 1,
		Snapshot:  snapshot,
		StaffID:   staffID,
		Reason:    "Registration",
	}})
	if err != nil {
		return nil, err
	}
	return person, nil
}

func (s *registrationService) linkAddresses(ctx context.Context, tx *gorm.DB, perID int, addresses []AddressInput) error {
	if len(addresses) == 0 {
		return nil
	}
	historyID, err := s.personalHistoryRepo.MaxHistoryID(ctx, tx, perID)
	if err != nil {
		return err
	}

	links := make([]*types.PersonalAddress, 0, len(addresses))
	historyRows := make([]*types.PersonalAddressHistory, 0, len(addresses))
	for _, in := range addresses {
		tuple := repos.AddressTuple{
			Province:      strings.TrimSpace(in.Province),
			City:          strings.TrimSpace(in.City),
			Barangay:      strings.TrimSpace(in.Barangay),
			Street:        strings.TrimSpace(in.Street),
			ExternalSitio: strings.TrimSpace(in.ExternalSitio),
		}
		if name := strings.TrimSpace(in.Sitio); name != "" {
			sitio, err := s.sitioRepo.GetOrCreateByName(ctx, tx, name)
			if err != nil {
				return err
			}
			tuple.SitioID = &sitio.ID
		}
		address, err := s.addressRepo.GetOrCreate(ctx, tx, tuple)
		if err != nil {
			return err
		}
		links = append(links, &types.PersonalAddress{
			ID:        uuid.New(),
			PerID:     perID,
			AddressID: address.ID,
		})
		historyRows = append(historyRows, &types.PersonalAddressHistory{
			ID:        uuid.New(),
			PerID:     perID,
			HistoryID: historyID,
			AddressID: address.ID,
		})
	}
	if _, err := s.personalAddressRepo.CreateLinks(ctx, tx, links); err != nil {
		return err
	}
	_, err = s.personalAddressRepo.CreateHistory(ctx, tx, historyRows)
	return err
}

func (s *registrationService) createProfile(ctx context.Context, tx *gorm.DB, perID int, staffID uuid.UUID, voterID *string) (*types.ResidentProfile, error) {
	rpID, err := s.gen.NextResidentID(ctx, tx)
	if err != nil {
		return nil, err
	}
	created, err := s.profileRepo.Create(ctx, tx, []*types.ResidentProfile{{
		RpID:    rpID,
		PerID:   perID,
		StaffID: staffID,
		VoterID: voterID,
	}})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

func (s *registrationService) createAccount(ctx context.Context, tx *gorm.DB, rpID string, input AccountInput) error {
	taken, err := s.accountRepo.GetByUsernames(ctx, tx, []string{input.Username})
	if err != nil {
		return err
	}
	if len(taken) > 0 {
		return fmt.Errorf("%w: username %q is taken", pkgerrors.ErrConflict, input.Username)
	}
	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return err
	}
	_, err = s.accountRepo.Create(ctx, tx, []*types.Account{{
		ID:       uuid.New(),
		RpID:     rpID,
		Username: input.Username,
		Password: hash,
	}})
	return err
}

func (s *registrationService) createHouseholds(ctx context.Context, tx *gorm.DB, rpID string, staffID uuid.UUID, houses []string) ([]*types.Household, error) {
	households := make([]*types.Household, 0, len(houses))
	for _, house := range houses {
		sitioName, street := parseHouseLocation(house)
		tuple := repos.AddressTuple{
			Province: s.locality.Province,
			City:     s.locality.City,
			Barangay: s.locality.Barangay,
			Street:   street,
		}
		if sitioName != "" {
			sitio, err := s.sitioRepo.GetOrCreateByName(ctx, tx, sitioName)
			if err != nil {
				return nil, err
			}
			tuple.SitioID = &sitio.ID
		}
		address, err := s.addressRepo.GetOrCreate(ctx, tx, tuple)
		if err != nil {
			return nil, err
		}
		hhID, err := s.gen.NextHouseholdID(ctx, tx)
		if err != nil {
			return nil, err
		}
		created, err := s.householdRepo.Create(ctx, tx, []*types.Household{{
			HhID:      hhID,
			AddressID: address.ID,
			OwnerRpID: rpID,
			StaffID:   staffID,
		}})
		if err != nil {
			return nil, err
		}
		households = append(households, created[0])
	}
	return households, nil
}

func (s *registrationService) placeInFamily(ctx context.Context, tx *gorm.DB, rpID string, households []*types.Household, input RegisterResidentInput) (*types.Family, error) {
	switch {
	case input.SoloFamily != nil:
		solo := input.SoloFamily
		var householdID string
		if solo.HouseIndex != nil {
			householdID = households[*solo.HouseIndex].HhID
		} else {
			existing, err := s.householdRepo.GetByIDs(ctx, tx, []string{*solo.HouseholdID})
			if err != nil {
				return nil, err
			}
			if len(existing) == 0 {
				return nil, fmt.Errorf("%w: household %s", pkgerrors.ErrNotFound, *solo.HouseholdID)
			}
			householdID = existing[0].HhID
		}

		famID, err := s.gen.NextFamilyID(ctx, tx, solo.BuildingType)
		if err != nil {
			return nil, err
		}
		created, err := s.familyRepo.Create(ctx, tx, []*types.Family{{
			FamID:        famID,
			HouseholdID:  householdID,
			BuildingType: solo.BuildingType,
		}})
		if err != nil {
			return nil, err
		}
		_, err = s.compositionRepo.Create(ctx, tx, []*types.FamilyComposition{{
			ID:         uuid.New(),
			FamID:      famID,
			RpID:       rpID,
			Role:       types.CompositionRoleIndependent,
			RecordedAt: time.Now(),
		}})
		if err != nil {
			return nil, err
		}
		return created[0], nil

	case input.JoinFamily != nil:
		join := input.JoinFamily
		families, err := s.familyRepo.GetByIDs(ctx, tx, []string{join.FamID})
		if err != nil {
			return nil, err
		}
		if len(families) == 0 {
			return nil, fmt.Errorf("%w: family %s", pkgerrors.ErrNotFound, join.FamID)
		}
		_, err = s.compositionRepo.Create(ctx, tx, []*types.FamilyComposition{{
			ID:         uuid.New(),
			FamID:      join.FamID,
			RpID:       rpID,
			Role:       join.Role,
			RecordedAt: time.Now(),
		}})
		if err != nil {
			return nil, err
		}
		return families[0], nil
	}
	return nil, nil
}

func (s *registrationService) createBusiness(ctx context.Context, tx *gorm.DB, rpID string, staffID uuid.UUID, input BusinessInput) (*types.Business, []string, error) {
	busID, err := s.gen.NextBusinessID(ctx, tx)
	if err != nil {
		return nil, nil, err
	}
	owner := rpID
	// A business registered together with its owner is verified on the
	// spot; only standalone submissions go through the two-step review.
	verifiedAt := time.Now()
	created, err := s.businessRepo.Create(ctx, tx, []*types.Business{{
		BusID:      busID,
		Name:       strings.TrimSpace(input.Name),
		Type:       input.Type,
		OwnerRpID:  &owner,
		Status:     types.BusinessStatusActive,
		VerifiedAt: &verifiedAt,
		StaffID:    staffID,
	}})
	if err != nil {
		return nil, nil, err
	}

	var uploadedKeys []string
	files := make([]*types.BusinessFile, 0, len(input.Files))
	for _, upload := range input.Files {
		key := path.Join("business", busID, uuid.New().String()+path.Ext(upload.Name))
		url, err := s.bucket.Upload(ctx, key, upload.ContentType, bytes.NewReader(upload.Data))
		if err != nil {
			return nil, uploadedKeys, fmt.Errorf("upload %q: %w", upload.Name, err)
		}
		uploadedKeys = append(uploadedKeys, key)
		files = append(files, &types.BusinessFile{
			ID:         uuid.New(),
			BusID:      busID,
			Name:       upload.Name,
			Type:       upload.ContentType,
			StorageKey: key,
			URL:        url,
		})
	}
	if _, err := s.businessFileRepo.Create(ctx, tx, files); err != nil {
		return nil, uploadedKeys, err
	}
	return created[0], uploadedKeys, nil
}

// compensateUploads removes objects uploaded during a transaction that later
// rolled back. Best effort only.
func (s *registrationService) compensateUploads(ctx context.Context, keys []string) {
	if s.bucket == nil {
		return
	}
	for _, key := range keys {
		if err := s.bucket.Delete(ctx, key); err != nil {
			s.log.Warn("Failed to remove orphaned upload", "key", key, "error", err)
		}
	}
}

func (s *registrationService) buildNotices(ctx context.Context, tx *gorm.DB, staffID uuid.UUID, result *RegisterResidentResult, input RegisterResidentInput) []Notice {
	var notices []Notice
	actor := staffID

	staffIDs, err := s.notifier.ProfilingStaffRecipients(ctx, actor)
	if err != nil {
		s.log.Warn("Failed to resolve profiling staff recipients", "error", err)
	} else if len(staffIDs) > 0 {
		notices = append(notices, Notice{
			Title:        "New resident registered",
			Message:      fmt.Sprintf("%s %s was registered as %s", result.Personal.FirstName, result.Personal.LastName, result.Profile.RpID),
			NotifType:    types.NotificationTypeRegistration,
			WebRoute:     "/residents",
			WebParams:    map[string]any{"rp_id": result.Profile.RpID},
			ActorStaffID: &actor,
			StaffIDs:     staffIDs,
		})
	}

	if input.JoinFamily != nil && result.Family != nil {
		rpIDs, err := s.notifier.FamilyMemberRecipients(ctx, result.Family.FamID)
		if err != nil {
			s.log.Warn("Failed to resolve family recipients", "fam_id", result.Family.FamID, "error", err)
		} else {
			// The new member does not need to hear about their own arrival.
			filtered := rpIDs[:0]
			for _, id := range rpIDs {
				if id != result.Profile.RpID {
					filtered = append(filtered, id)
				}
			}
			if len(filtered) > 0 {
				notices = append(notices, Notice{
					Title:        "Family member added",
					Message:      fmt.Sprintf("%s %s joined your family", result.Personal.FirstName, result.Personal.LastName),
					NotifType:    types.NotificationTypeFamily,
					MobileRoute:  "/family",
					MobileParams: map[string]any{"fam_id": result.Family.FamID},
					ActorStaffID: &actor,
					RpIDs:        filtered,
				})
			}
		}
	}

	if len(result.Households) > 0 || result.Business != nil {
		admins, err := s.notifier.AdminRecipients(ctx)
		if err != nil {
			s.log.Warn("Failed to resolve admin recipients", "error", err)
		} else if len(admins) > 0 {
			if len(result.Households) > 0 {
				ids := make([]string, 0, len(result.Households))
				for _, hh := range result.Households {
					ids = append(ids, hh.HhID)
				}
				notices = append(notices, Notice{
					Title:        "Household recorded",
					Message:      fmt.Sprintf("%s %s now owns %s", result.Personal.FirstName, result.Personal.LastName, strings.Join(ids, ", ")),
					NotifType:    types.NotificationTypeHousehold,
					WebRoute:     "/households",
					WebParams:    map[string]any{"hh_ids": ids},
					ActorStaffID: &actor,
					StaffIDs:     admins,
				})
			}
			if result.Business != nil {
				notices = append(notices, Notice{
					Title:        "New business registered",
					Message:      fmt.Sprintf("%s was registered under %s", result.Business.Name, result.Profile.RpID),
					NotifType:    types.NotificationTypeBusiness,
					WebRoute:     "/businesses",
					WebParams:    map[string]any{"bus_id": result.Business.BusID},
					ActorStaffID: &actor,
					StaffIDs:     admins,
				})
			}
		}
	}
	return notices
}

// parseHouseLocation splits a "Sitio - Street" house string. Strings without
// a separator are treated as a bare street.
func parseHouseLocation(house string) (sitio, street string) {
	parts := strings.SplitN(house, " - ", 2)
	if len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return "", strings.TrimSpace(house)
}

func syncPayload(result *RegisterResidentResult) map[string]any {
	payload := map[string]any{
		"rp_id":  result.Profile.RpID,
		"per_id": result.Personal.PerID,
	}
	hhIDs := make([]string, 0, len(result.Households))
	for _, hh := range result.Households {
		hhIDs = append(hhIDs, hh.HhID)
	}
	payload["household_ids"] = hhIDs
	if result.Family != nil {
		payload["fam_id"] = result.Family.FamID
	}
	if result.Business != nil {
		payload["bus_id"] = result.Business.BusID
	}
	return payload
}
