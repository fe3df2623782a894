package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/duepay/payables/internal/domain"
	"github.com/duepay/payables/internal/usecase"
	"github.com/duepay/payables/internal/usecase/mocks"
)

const testTenant = "tenant-1"

func TestSupplierUseCase_CreateSupplier(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateSupplierInput
		setupMocks  func(*mocks.MockSupplierRepository, *mocks.MockIDGenerator)
		wantErr     error
		check       func(*testing.T, *domain.Supplier)
	}{
		{
			name: "successful creation",
			input: usecase.CreateSupplierInput{
				Name:   "  Acme Utilities  ",
				TaxID:  "12.345.678/0001-90",
				Active: true,
			},
			setupMocks: func(repo *mocks.MockSupplierRepository, idGen *mocks.MockIDGenerator) {
				idGen.EXPECT().Generate().Return("sup-1").AnyTimes()
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, s *domain.Supplier) {
				assert.Equal(t, "Acme Utilities", s.Name)
				assert.Equal(t, testTenant, s.TenantID)
				assert.True(t, s.Active)
			},
		},
		{
			name: "portal credentials dropped when portal delivery disabled",
			input: usecase.CreateSupplierInput{
				Name:            "Acme",
				InvoiceByPortal: false,
				PortalURL:       "https://portal.example.com",
				PortalLogin:     "user",
				PortalPassword:  "secret",
				Active:          true,
			},
			setupMocks: func(repo *mocks.MockSupplierRepository, idGen *mocks.MockIDGenerator) {
				idGen.EXPECT().Generate().Return("sup-2").AnyTimes()
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, s *domain.Supplier) {
				assert.Empty(t, s.PortalURL)
				assert.Empty(t, s.PortalLogin)
				assert.Empty(t, s.PortalPassword)
			},
		},
		{
			name: "portal credentials kept when portal delivery enabled",
			input: usecase.CreateSupplierInput{
				Name:            "Acme",
				InvoiceByPortal: true,
				PortalURL:       "https://portal.example.com",
				PortalLogin:     "user",
				Active:          true,
			},
			setupMocks: func(repo *mocks.MockSupplierRepository, idGen *mocks.MockIDGenerator) {
				idGen.EXPECT().Generate().Return("sup-3").AnyTimes()
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, s *domain.Supplier) {
				assert.Equal(t, "https://portal.example.com", s.PortalURL)
				assert.Equal(t, "user", s.PortalLogin)
			},
		},
		{
			name:       "blank name rejected",
			input:      usecase.CreateSupplierInput{Name: "   "},
			setupMocks: func(repo *mocks.MockSupplierRepository, idGen *mocks.MockIDGenerator) {},
			wantErr:    domain.ErrInvalidSupplierName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := mocks.NewMockSupplierRepository(ctrl)
			idGen := mocks.NewMockIDGenerator(ctrl)
			tt.setupMocks(repo, idGen)

			uc := usecase.NewSupplierUseCase(repo, nil, idGen, nil)
			supplier, err := uc.CreateSupplier(context.Background(), testTenant, tt.input)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, supplier)
			tt.check(t, supplier)
		})
	}
}

func TestSupplierUseCase_UpdateSupplier(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockSupplierRepository(ctrl)
	idGen := mocks.NewMockIDGenerator(ctrl)

	existing := &domain.Supplier{
		ID:       "sup-1",
		TenantID: testTenant,
		Name:     "Old Name",
		Active:   true,
	}

	repo.EXPECT().GetByID(gomock.Any(), testTenant, "sup-1").Return(existing, nil)
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	uc := usecase.NewSupplierUseCase(repo, nil, idGen, nil)
	supplier, err := uc.UpdateSupplier(context.Background(), testTenant, "sup-1", usecase.UpdateSupplierInput{
		Name:   "New Name",
		Active: false,
	})

	require.NoError(t, err)
	assert.Equal(t, "New Name", supplier.Name)
	assert.False(t, supplier.Active)
}

func TestSupplierUseCase_UpdateSupplier_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockSupplierRepository(ctrl)
	idGen := mocks.NewMockIDGenerator(ctrl)

	repo.EXPECT().GetByID(gomock.Any(), testTenant, "missing").Return(nil, domain.ErrSupplierNotFound)

	uc := usecase.NewSupplierUseCase(repo, nil, idGen, nil)
	_, err := uc.UpdateSupplier(context.Background(), testTenant, "missing", usecase.UpdateSupplierInput{Name: "X"})

	require.ErrorIs(t, err, domain.ErrSupplierNotFound)
}

func TestSupplierUseCase_CreateSupplier_WritesAudit(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockSupplierRepository(ctrl)
	auditRepo := mocks.NewMockAuditRepository(ctrl)
	idGen := mocks.NewMockIDGenerator(ctrl)

	idGen.EXPECT().Generate().Return("id").AnyTimes()
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	auditRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, log *domain.AuditLog) error {
		assert.Equal(t, string(domain.AuditActionSupplierCreate), log.Action)
		assert.Equal(t, "supplier", log.ResourceType)
		assert.Equal(t, testTenant, log.TenantID)
		return nil
	})

	uc := usecase.NewSupplierUseCase(repo, auditRepo, idGen, nil)
	_, err := uc.CreateSupplier(context.Background(), testTenant, usecase.CreateSupplierInput{Name: "Acme", Active: true})

	require.NoError(t, err)
}
