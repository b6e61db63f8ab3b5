package converter

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/amirasaad/tokenswap/pkg/catalog"
	"github.com/amirasaad/tokenswap/pkg/converter"
	"github.com/amirasaad/tokenswap/pkg/eventbus"
	"github.com/amirasaad/tokenswap/pkg/selection"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSource struct {
	mock.Mock
}

func (m *MockSource) Fetch(ctx context.Context) ([]catalog.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Currency), args.Error(1)
}

func testPrices() []catalog.Currency {
	return []catalog.Currency{
		{Symbol: "USD", Price: decimal.NewFromInt(1)},
		{Symbol: "BLUR", Price: decimal.RequireFromString("0.25")},
	}
}

func newService(src catalog.Source) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(src, eventbus.NewSimpleEventBus(), "", "", logger)
}

func TestService_CreateAndUse(t *testing.T) {
	svc := newService(catalog.StaticSource(testPrices()))

	id, view, err := svc.Create(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
	assert.Equal(t, converter.Ready, view.Status)
	assert.Equal(t, "USD", view.SellSymbol)
	assert.Equal(t, "BLUR", view.BuySymbol)
	assert.Equal(t, 1, svc.Count())

	ctrl, err := svc.Get(id)
	require.NoError(t, err)
	view, err = ctrl.EditAmount(selection.Sell, "10")
	require.NoError(t, err)
	assert.Equal(t, "40.00", view.BuyAmount)
}

func TestService_SessionsAreIndependent(t *testing.T) {
	svc := newService(catalog.StaticSource(testPrices()))

	a, _, err := svc.Create(context.Background())
	require.NoError(t, err)
	b, _, err := svc.Create(context.Background())
	require.NoError(t, err)

	ctrlA, err := svc.Get(a)
	require.NoError(t, err)
	ctrlB, err := svc.Get(b)
	require.NoError(t, err)

	_, err = ctrlA.EditSell("1")
	require.NoError(t, err)
	assert.Equal(t, "", ctrlB.Amounts().Sell)
}

func TestService_CreateLoadFailure(t *testing.T) {
	src := new(MockSource)
	src.On("Fetch", mock.Anything).Return(nil, &catalog.FetchError{Kind: catalog.ErrNetworkFailure}).Once()
	svc := newService(src)

	id, view, err := svc.Create(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrNetworkFailure)
	assert.Equal(t, uuid.Nil, id)
	assert.Equal(t, converter.Uninitialized, view.Status)
	assert.Zero(t, svc.Count())
	src.AssertExpectations(t)
}

func TestService_Delete(t *testing.T) {
	svc := newService(catalog.StaticSource(testPrices()))
	id, _, err := svc.Create(context.Background())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(id))
	_, err = svc.Get(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, svc.Delete(id), ErrSessionNotFound)
}

func TestService_Currencies(t *testing.T) {
	svc := newService(catalog.StaticSource(testPrices()))

	list, err := svc.Currencies(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "USD", list[0].Symbol)
}
