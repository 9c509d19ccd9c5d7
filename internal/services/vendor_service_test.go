package services_test

import (
	"testing"

	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var (
	admin    = models.Actor{AccountID: "admin-1", IsAdmin: true}
	nonAdmin = models.Actor{AccountID: "acct-1", IsAdmin: false}
)

func newVendorFixture() (*services.VendorService, *repositories.MockVendorRepository, *MockUserRepository, *fakeMailer) {
	vendorRepo := repositories.NewMockVendorRepository()
	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", mock.Anything).Return(&models.User{ID: "acct-1", Email: "alice@x.com"}, nil)
	mail := &fakeMailer{}
	svc := services.NewVendorService(vendorRepo, userRepo, mail, nil)
	return svc, vendorRepo, userRepo, mail
}

func submitTestProfile(t *testing.T, svc *services.VendorService, accountID string) *models.VendorProfile {
	t.Helper()
	profile, err := svc.SubmitProfile(accountID, models.VendorProfile{
		ShopName:     "Alice's Emporium",
		Address:      "1 Market Street",
		BusinessType: models.BusinessRetail,
		IDType:       models.IDProofGST,
		IDNumber:     "GST-123",
	})
	assert.NoError(t, err)
	return profile
}

func TestVendorLifecycle_HappyPath(t *testing.T) {
	svc, vendorRepo, _, mail := newVendorFixture()

	profile := submitTestProfile(t, svc, "acct-1")
	assert.Equal(t, models.ApprovalPending, profile.ApprovalStatus)
	assert.False(t, profile.Activated)

	access, err := svc.HomeFor("acct-1")
	assert.NoError(t, err)
	assert.Equal(t, services.HomeNotApproved, access)

	// Admin approves: status flips, an activation code is stored and mailed.
	assert.NoError(t, svc.Approve(profile.ID, admin))
	approved, _ := vendorRepo.GetByID(profile.ID)
	assert.Equal(t, models.ApprovalApproved, approved.ApprovalStatus)
	assert.NotEmpty(t, approved.ActivationCode)
	assert.False(t, approved.Activated)
	assert.Len(t, mail.Sent, 1)
	assert.Equal(t, "alice@x.com", mail.Sent[0].Recipient)
	assert.Contains(t, mail.Sent[0].Body, approved.ActivationCode)

	// Approved but not yet activated: redirected to the activation step.
	access, err = svc.HomeFor("acct-1")
	assert.NoError(t, err)
	assert.Equal(t, services.HomeActivationRequired, access)

	// Vendor confirms the code and becomes active; the code is gone.
	assert.NoError(t, svc.ConfirmActivation("acct-1", approved.ActivationCode))
	activated, _ := vendorRepo.GetByID(profile.ID)
	assert.True(t, activated.Activated)
	assert.Empty(t, activated.ActivationCode)
	assert.True(t, activated.IsActive())

	access, err = svc.HomeFor("acct-1")
	assert.NoError(t, err)
	assert.Equal(t, services.HomeGranted, access)

	// Blocking denies access but never touches the approval status.
	assert.NoError(t, svc.Block(profile.ID, admin, "fraud"))
	blocked, _ := vendorRepo.GetByID(profile.ID)
	assert.True(t, blocked.IsBlocked)
	assert.Equal(t, "fraud", blocked.BlockedReason)
	assert.Equal(t, models.ApprovalApproved, blocked.ApprovalStatus)
	assert.True(t, blocked.Activated)

	access, err = svc.HomeFor("acct-1")
	assert.NoError(t, err)
	assert.Equal(t, services.HomeBlocked, access)

	assert.NoError(t, svc.Unblock(profile.ID, admin))
	access, err = svc.HomeFor("acct-1")
	assert.NoError(t, err)
	assert.Equal(t, services.HomeGranted, access)
}

func TestVendorLifecycle_SecondProfileRejected(t *testing.T) {
	svc, _, _, _ := newVendorFixture()

	submitTestProfile(t, svc, "acct-1")
	_, err := svc.SubmitProfile("acct-1", models.VendorProfile{
		ShopName:     "Second Shop",
		Address:      "2 Market Street",
		BusinessType: models.BusinessService,
		IDType:       models.IDProofPAN,
		IDNumber:     "PAN-999",
	})
	assert.ErrorIs(t, err, services.ErrProfileAlreadyExists)
}

func TestVendorLifecycle_ActivationRequiresApproval(t *testing.T) {
	svc, _, _, _ := newVendorFixture()

	// No profile at all.
	assert.ErrorIs(t, svc.ConfirmActivation("acct-1", "123456"), services.ErrNotApproved)

	// Profile exists but is still pending.
	submitTestProfile(t, svc, "acct-1")
	assert.ErrorIs(t, svc.ConfirmActivation("acct-1", "123456"), services.ErrNotApproved)
}

func TestVendorLifecycle_ApproveRejectMutuallyExclusive(t *testing.T) {
	svc, vendorRepo, _, _ := newVendorFixture()

	profile := submitTestProfile(t, svc, "acct-1")
	assert.NoError(t, svc.Approve(profile.ID, admin))

	// The profile already left pending; the opposite decision loses.
	assert.ErrorIs(t, svc.Reject(profile.ID, admin, "too late"), services.ErrNotPending)
	after, _ := vendorRepo.GetByID(profile.ID)
	assert.Equal(t, models.ApprovalApproved, after.ApprovalStatus)
	assert.Empty(t, after.RejectionReason)

	// And approving twice is just as illegal.
	assert.ErrorIs(t, svc.Approve(profile.ID, admin), services.ErrNotPending)
}

func TestVendorLifecycle_RejectWinsSymmetrically(t *testing.T) {
	svc, vendorRepo, _, _ := newVendorFixture()

	profile := submitTestProfile(t, svc, "acct-1")
	assert.NoError(t, svc.Reject(profile.ID, admin, "incomplete documents"))

	assert.ErrorIs(t, svc.Approve(profile.ID, admin), services.ErrNotPending)
	after, _ := vendorRepo.GetByID(profile.ID)
	assert.Equal(t, models.ApprovalRejected, after.ApprovalStatus)
	assert.Equal(t, "incomplete documents", after.RejectionReason)

	// A rejected vendor has nothing left to block.
	assert.ErrorIs(t, svc.Block(profile.ID, admin, "anything"), services.ErrNotApproved)
}

func TestVendorLifecycle_ActivationCodeSingleUse(t *testing.T) {
	svc, vendorRepo, _, _ := newVendorFixture()

	profile := submitTestProfile(t, svc, "acct-1")
	assert.NoError(t, svc.Approve(profile.ID, admin))
	approved, _ := vendorRepo.GetByID(profile.ID)
	code := approved.ActivationCode

	// A wrong code changes nothing.
	wrongCode := "000000"
	if code == wrongCode {
		wrongCode = "000001"
	}
	assert.ErrorIs(t, svc.ConfirmActivation("acct-1", wrongCode), services.ErrCodeMismatch)
	still, _ := vendorRepo.GetByID(profile.ID)
	assert.Equal(t, code, still.ActivationCode)
	assert.False(t, still.Activated)

	// The right code works exactly once.
	assert.NoError(t, svc.ConfirmActivation("acct-1", code))
	assert.ErrorIs(t, svc.ConfirmActivation("acct-1", code), services.ErrNotApproved)
}

func TestVendorLifecycle_BlockTogglePreservesStatus(t *testing.T) {
	svc, vendorRepo, _, _ := newVendorFixture()

	profile := submitTestProfile(t, svc, "acct-1")
	assert.NoError(t, svc.Approve(profile.ID, admin))

	for i := 0; i < 3; i++ {
		assert.NoError(t, svc.Block(profile.ID, admin, "spot check"))
		assert.NoError(t, svc.Unblock(profile.ID, admin))
	}
	// Unblocking twice in a row is harmless too.
	assert.NoError(t, svc.Unblock(profile.ID, admin))

	after, _ := vendorRepo.GetByID(profile.ID)
	assert.Equal(t, models.ApprovalApproved, after.ApprovalStatus)
	assert.False(t, after.IsBlocked)
}

func TestVendorLifecycle_NonAdminForbiddenWithoutSideEffect(t *testing.T) {
	svc, vendorRepo, _, mail := newVendorFixture()

	profile := submitTestProfile(t, svc, "acct-1")
	before, _ := vendorRepo.GetByID(profile.ID)

	assert.ErrorIs(t, svc.Approve(profile.ID, nonAdmin), services.ErrForbidden)
	assert.ErrorIs(t, svc.Reject(profile.ID, nonAdmin, "nope"), services.ErrForbidden)
	assert.ErrorIs(t, svc.Block(profile.ID, nonAdmin, "nope"), services.ErrForbidden)
	assert.ErrorIs(t, svc.Unblock(profile.ID, nonAdmin), services.ErrForbidden)
	_, err := svc.ListVendors(nonAdmin)
	assert.ErrorIs(t, err, services.ErrForbidden)

	after, _ := vendorRepo.GetByID(profile.ID)
	assert.Equal(t, before, after)
	assert.Empty(t, mail.Sent)
}

func TestVendorLifecycle_UnknownVendor(t *testing.T) {
	svc, _, _, _ := newVendorFixture()

	assert.ErrorIs(t, svc.Approve("missing", admin), repositories.ErrVendorNotFound)
	assert.ErrorIs(t, svc.Reject("missing", admin, "x"), repositories.ErrVendorNotFound)
	assert.ErrorIs(t, svc.Block("missing", admin, "x"), repositories.ErrVendorNotFound)
	assert.ErrorIs(t, svc.Unblock("missing", admin), repositories.ErrVendorNotFound)
}
