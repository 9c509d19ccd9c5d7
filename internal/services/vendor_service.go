package services

import (
	"errors"
	"fmt"
	"log"

	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/pkg/codes"
	"pasar/pkg/mailer"
	"pasar/pkg/rabbitmq"
)

// HomeAccess is the outcome of the vendor home reachability check.
type HomeAccess string

const (
	// HomeGranted: approved, activated and not blocked.
	HomeGranted HomeAccess = "granted"
	// HomeActivationRequired: approved but the activation code has not
	// been confirmed yet, redirect to the activation step.
	HomeActivationRequired HomeAccess = "activation_required"
	// HomeNotApproved: pending, rejected or no profile at all.
	HomeNotApproved HomeAccess = "not_approved"
	// HomeBlocked: blocked by an admin, overrides everything else.
	HomeBlocked HomeAccess = "blocked"
)

// VendorService owns the vendor lifecycle: profile submission, the admin
// approve/reject decision, activation-code confirmation, and the reversible
// block flag. All mutations go through the repository's conditional updates,
// so a transition either wins its state check atomically or reports the
// state it actually found.
type VendorService struct {
	vendorRepo repositories.VendorRepository
	userRepo   repositories.UserRepository
	mail       mailer.Mailer
	mqClient   *rabbitmq.Client
}

// NewVendorService creates a new VendorService.
func NewVendorService(vendorRepo repositories.VendorRepository, userRepo repositories.UserRepository, mail mailer.Mailer, mqClient *rabbitmq.Client) *VendorService {
	return &VendorService{
		vendorRepo: vendorRepo,
		userRepo:   userRepo,
		mail:       mail,
		mqClient:   mqClient,
	}
}

// SubmitProfile files the business details for an account that has none
// yet. The profile starts pending; only an admin decision moves it on.
func (s *VendorService) SubmitProfile(accountID string, profile models.VendorProfile) (*models.VendorProfile, error) {
	if _, err := s.userRepo.GetByID(accountID); err != nil {
		return nil, fmt.Errorf("failed to load account %s: %w", accountID, err)
	}

	if _, err := s.vendorRepo.GetByUserID(accountID); err == nil {
		return nil, ErrProfileAlreadyExists
	} else if !errors.Is(err, repositories.ErrVendorNotFound) {
		return nil, fmt.Errorf("failed to check for existing profile: %w", err)
	}

	profile.ID = ""
	profile.UserID = accountID
	profile.ApprovalStatus = models.ApprovalPending
	profile.RejectionReason = ""
	profile.ActivationCode = ""
	profile.Activated = false
	profile.IsBlocked = false
	profile.BlockedReason = ""

	if err := s.vendorRepo.Create(&profile); err != nil {
		return nil, fmt.Errorf("failed to create vendor profile: %w", err)
	}
	return &profile, nil
}

// Approve moves a pending profile to approved, issues a fresh activation
// code and emails it to the vendor. Only one of two racing admin decisions
// can win; the loser gets ErrNotPending.
func (s *VendorService) Approve(vendorID string, actor models.Actor) error {
	if !actor.IsAdmin {
		return ErrForbidden
	}

	code := codes.Issue()
	won, err := s.vendorRepo.Approve(vendorID, code)
	if err != nil {
		return err
	}
	if !won {
		// Re-read to tell a missing profile from a lost race.
		if _, err := s.vendorRepo.GetByID(vendorID); err != nil {
			return err
		}
		return ErrNotPending
	}

	s.mailActivationCode(vendorID, code)
	s.publishEvent(rabbitmq.EventVendorApproved, map[string]interface{}{
		"vendor_id": vendorID,
		"admin_id":  actor.AccountID,
	})
	return nil
}

// Reject moves a pending profile to rejected, keeping the reason.
func (s *VendorService) Reject(vendorID string, actor models.Actor, reason string) error {
	if !actor.IsAdmin {
		return ErrForbidden
	}

	won, err := s.vendorRepo.Reject(vendorID, reason)
	if err != nil {
		return err
	}
	if !won {
		if _, err := s.vendorRepo.GetByID(vendorID); err != nil {
			return err
		}
		return ErrNotPending
	}

	s.publishEvent(rabbitmq.EventVendorRejected, map[string]interface{}{
		"vendor_id": vendorID,
		"admin_id":  actor.AccountID,
		"reason":    reason,
	})
	return nil
}

// ConfirmActivation consumes the activation code issued on approval and
// marks the vendor fully active. The code is single use: the consuming
// update clears it, so a replay finds nothing to match and the profile is
// no longer awaiting activation.
func (s *VendorService) ConfirmActivation(accountID, submittedCode string) error {
	vendor, err := s.vendorRepo.GetByUserID(accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrVendorNotFound) {
			return ErrNotApproved
		}
		return err
	}
	if !vendor.AwaitingActivation() {
		return ErrNotApproved
	}

	won, err := s.vendorRepo.ConsumeActivationCode(accountID, submittedCode)
	if err != nil {
		return err
	}
	if !won {
		// Either the code was wrong, or a concurrent confirmation got
		// there first. Re-read to report the state that actually holds.
		vendor, err := s.vendorRepo.GetByUserID(accountID)
		if err != nil {
			return err
		}
		if !vendor.AwaitingActivation() {
			return ErrNotApproved
		}
		return ErrCodeMismatch
	}

	s.publishEvent(rabbitmq.EventVendorActivated, map[string]interface{}{
		"vendor_id": vendor.ID,
	})
	return nil
}

// Block sets the block flag on a vendor. It never touches the approval
// status, so unblocking restores exactly the state the vendor was in.
func (s *VendorService) Block(vendorID string, actor models.Actor, reason string) error {
	if !actor.IsAdmin {
		return ErrForbidden
	}

	won, err := s.vendorRepo.SetBlocked(vendorID, true, reason)
	if err != nil {
		return err
	}
	if !won {
		if _, err := s.vendorRepo.GetByID(vendorID); err != nil {
			return err
		}
		// Profile exists but is rejected, there is nothing to block.
		return ErrNotApproved
	}

	s.publishEvent(rabbitmq.EventVendorBlocked, map[string]interface{}{
		"vendor_id": vendorID,
		"admin_id":  actor.AccountID,
		"reason":    reason,
	})
	return nil
}

// Unblock clears the block flag on a vendor.
func (s *VendorService) Unblock(vendorID string, actor models.Actor) error {
	if !actor.IsAdmin {
		return ErrForbidden
	}

	won, err := s.vendorRepo.SetBlocked(vendorID, false, "")
	if err != nil {
		return err
	}
	if !won {
		// Unblock matches any existing row, so losing means no profile.
		if _, err := s.vendorRepo.GetByID(vendorID); err != nil {
			return err
		}
		return nil
	}

	s.publishEvent(rabbitmq.EventVendorUnblocked, map[string]interface{}{
		"vendor_id": vendorID,
		"admin_id":  actor.AccountID,
	})
	return nil
}

// HomeFor derives where the vendor belongs right now: the home view, the
// activation step, or a not-approved notice. Blocking wins over everything.
func (s *VendorService) HomeFor(accountID string) (HomeAccess, error) {
	vendor, err := s.vendorRepo.GetByUserID(accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrVendorNotFound) {
			return HomeNotApproved, nil
		}
		return "", err
	}

	switch {
	case vendor.IsBlocked:
		return HomeBlocked, nil
	case vendor.IsActive():
		return HomeGranted, nil
	case vendor.AwaitingActivation():
		return HomeActivationRequired, nil
	default:
		return HomeNotApproved, nil
	}
}

// GetProfile returns the vendor profile owned by an account.
func (s *VendorService) GetProfile(accountID string) (*models.VendorProfile, error) {
	return s.vendorRepo.GetByUserID(accountID)
}

// ListVendors returns every vendor profile for the admin dashboard.
func (s *VendorService) ListVendors(actor models.Actor) ([]models.VendorProfile, error) {
	if !actor.IsAdmin {
		return nil, ErrForbidden
	}
	return s.vendorRepo.GetAll()
}

// mailActivationCode looks up the vendor's account email and sends the
// activation code. Delivery is best-effort: a bounce is logged, never
// rolled back into the approval.
func (s *VendorService) mailActivationCode(vendorID, code string) {
	vendor, err := s.vendorRepo.GetByID(vendorID)
	if err != nil {
		log.Printf("Warning: cannot mail activation code, vendor %s unreadable: %v", vendorID, err)
		return
	}
	user, err := s.userRepo.GetByID(vendor.UserID)
	if err != nil {
		log.Printf("Warning: cannot mail activation code, account for vendor %s unreadable: %v", vendorID, err)
		return
	}

	body := fmt.Sprintf("Your vendor account was approved. Your activation code is %s.", code)
	if err := s.mail.Send(user.Email, "Vendor account approved", body); err != nil {
		log.Printf("Warning: activation code delivery to %s failed: %v", user.Email, err)
	}
}

func (s *VendorService) publishEvent(event string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	if err := s.mqClient.PublishVendorEvent(event, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", event, err)
	}
}
