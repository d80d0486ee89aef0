package localytics

import (
	"testing"

	"github.com/Tap30/ripple-localytics/adapters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApplication struct{}

func (testApplication) PackageName() string { return "com.example.app" }

type testActivity struct {
	intent *Intent
}

func (a *testActivity) Intent() *Intent { return a.intent }

type testFragmentActivity struct {
	testActivity
}

func (a *testFragmentActivity) MessageHostID() string { return "fragment-activity" }

func newTestIntegration(t *testing.T, settings Settings, messenger InAppMessenger) (*Integration, *adapters.RecordingClientAdapter) {
	t.Helper()
	client := adapters.NewRecordingClientAdapter()
	integration, err := NewIntegration(Config{
		Settings:    settings,
		Application: testApplication{},
		Client:      client,
		Messenger:   messenger,
		Logger:      adapters.NewPrintLoggerAdapter(adapters.LogLevelVerbose),
	})
	require.NoError(t, err)
	client.Reset()
	return integration, client
}

func TestIntegration_Initialize(t *testing.T) {
	client := adapters.NewRecordingClientAdapter()
	app := testApplication{}

	integration, err := NewIntegration(Config{
		Settings: Settings{
			AppKey:            "foo",
			OrganizationScope: true,
			Dimensions:        DimensionMap{"foo": "bar"},
		},
		Application: app,
		Client:      client,
		Logger:      adapters.NewPrintLoggerAdapter(adapters.LogLevelVerbose),
	})
	require.NoError(t, err)

	assert.Equal(t, []adapters.Call{
		{Method: adapters.MethodSetLoggingEnabled, Args: []any{true}},
		{Method: adapters.MethodIntegrate, Args: []any{app, "foo"}},
	}, client.Calls())
	assert.Equal(t, DimensionMap{"foo": "bar"}, integration.Dimensions())
	assert.Equal(t, adapters.ProfileScopeOrganization, integration.AttributeScope())
	assert.False(t, integration.HasInAppMessaging())
}

func TestIntegration_InitializeDefaults(t *testing.T) {
	client := adapters.NewRecordingClientAdapter()

	integration, err := NewIntegration(Config{
		Settings: Settings{AppKey: "foo"},
		Client:   client,
		Logger:   adapters.NewPrintLoggerAdapter(adapters.LogLevelDebug),
	})
	require.NoError(t, err)

	assert.Equal(t, []any{false}, client.CallsTo(adapters.MethodSetLoggingEnabled)[0].Args)
	assert.NotNil(t, integration.Dimensions())
	assert.Empty(t, integration.Dimensions())
	assert.Equal(t, adapters.ProfileScopeApplication, integration.AttributeScope())
}

func TestIntegration_InitializeWithoutLogger(t *testing.T) {
	client := adapters.NewRecordingClientAdapter()

	_, err := NewIntegration(Config{Settings: Settings{AppKey: "foo"}, Client: client})
	require.NoError(t, err)
	assert.Equal(t, []any{false}, client.CallsTo(adapters.MethodSetLoggingEnabled)[0].Args)
}

func TestIntegration_InitializeErrors(t *testing.T) {
	t.Run("missing app key", func(t *testing.T) {
		client := adapters.NewRecordingClientAdapter()
		_, err := NewIntegration(Config{Client: client})
		require.EqualError(t, err, "appKey must be provided in settings")
		assert.Empty(t, client.Calls())
	})

	t.Run("missing client", func(t *testing.T) {
		_, err := NewIntegration(Config{Settings: Settings{AppKey: "foo"}})
		require.EqualError(t, err, "ClientAdapter must be provided in config")
	})
}

func TestIntegration_ActivityResume(t *testing.T) {
	integration, client := newTestIntegration(t, Settings{AppKey: "foo"}, nil)
	intent := &Intent{Action: "android.intent.action.VIEW"}

	integration.OnActivityResumed(&testActivity{intent: intent})

	assert.Equal(t, []adapters.Call{
		{Method: adapters.MethodOpenSession},
		{Method: adapters.MethodUpload},
		{Method: adapters.MethodHandleTestMode, Args: []any{intent}},
	}, client.Calls())
}

func TestIntegration_ActivityResumeWithoutIntent(t *testing.T) {
	integration, client := newTestIntegration(t, Settings{AppKey: "foo"}, nil)

	integration.OnActivityResumed(&testActivity{})

	assert.Equal(t, []string{adapters.MethodOpenSession, adapters.MethodUpload}, client.Methods())
}

func TestIntegration_ActivityResumeCompat(t *testing.T) {
	messenger := adapters.NewRecordingClientAdapter()
	integration, client := newTestIntegration(t, Settings{AppKey: "foo"}, messenger)
	activity := &testFragmentActivity{}

	integration.OnActivityResumed(activity)

	assert.Equal(t, []string{adapters.MethodOpenSession, adapters.MethodUpload}, client.Methods())
	assert.Equal(t, []adapters.Call{
		{Method: adapters.MethodSetInAppMessageDisplayActivity, Args: []any{activity}},
	}, messenger.Calls())
}

func TestIntegration_ActivityResumeCompatPlainActivity(t *testing.T) {
	messenger := adapters.NewRecordingClientAdapter()
	integration, _ := newTestIntegration(t, Settings{AppKey: "foo"}, messenger)

	integration.OnActivityResumed(&testActivity{})

	assert.Empty(t, messenger.Calls())
}

func TestIntegration_ActivityResumeMessageHostWithoutCapability(t *testing.T) {
	integration, client := newTestIntegration(t, Settings{AppKey: "foo"}, nil)

	integration.OnActivityResumed(&testFragmentActivity{})

	assert.Equal(t, []string{adapters.MethodOpenSession, adapters.MethodUpload}, client.Methods())
}

func TestIntegration_ActivityPause(t *testing.T) {
	integration, client := newTestIntegration(t, Settings{AppKey: "foo"}, nil)

	integration.OnActivityPaused(&testActivity{})

	assert.Equal(t, []string{adapters.MethodCloseSession, adapters.MethodUpload}, client.Methods())
}

func TestIntegration_ActivityPauseCompat(t *testing.T) {
	// One recorder for both roles keeps the full ordering observable.
	client := adapters.NewRecordingClientAdapter()
	integration, err := NewIntegration(Config{
		Settings:  Settings{AppKey: "foo"},
		Client:    client,
		Messenger: client,
		Logger:    adapters.NewNoOpLoggerAdapter(),
	})
	require.NoError(t, err)
	client.Reset()

	for _, activity := range []Activity{&testFragmentActivity{}, &testActivity{}} {
		integration.OnActivityPaused(activity)

		assert.Equal(t, []string{
			adapters.MethodDismissCurrentInAppMessage,
			adapters.MethodClearInAppMessageDisplayActivity,
			adapters.MethodCloseSession,
			adapters.MethodUpload,
		}, client.Methods())
		client.Reset()
	}
}

func TestIntegration_Flush(t *testing.T) {
	integration, client := newTestIntegration(t, Settings{AppKey: "foo"}, nil)

	integration.Flush()

	assert.Equal(t, []string{adapters.MethodUpload}, client.Methods())
}

func TestIntegration_Identify(t *testing.T) {
	integration, client := newTestIntegration(t, Settings{AppKey: "foo"}, nil)

	integration.Identify(IdentifyEvent{
		UserID: "foo",
		Traits: Traits{"userId": "foo"},
	})

	assert.Equal(t, []adapters.Call{
		{Method: adapters.MethodSetCustomerID, Args: []any{"foo"}},
		{Method: adapters.MethodSetProfileAttribute, Args: []any{"userId", "foo", adapters.ProfileScopeApplication}},
	}, client.Calls())
}

func TestIntegration_IdentifyWithSpecialFields(t *testing.T) {
	integration, client := newTestIntegration(t, Settings{AppKey: "foo"}, nil)

	integration.Identify(IdentifyEvent{
		UserID: "foo",
		Traits: Traits{
			"userId":    "foo",
			"email":     "baz",
			"name":      "bar",
			"firstName": "bar",
			"lastName":  "foo",
			"custom":    "qaz",
		},
	})

	scope := adapters.ProfileScopeApplication
	assert.Equal(t, []adapters.Call{
		{Method: adapters.MethodSetCustomerID, Args: []any{"foo"}},
		{Method: adapters.MethodSetIdentifier, Args: []any{"email", "baz"}},
		{Method: adapters.MethodSetCustomerEmail, Args: []any{"baz"}},
		{Method: adapters.MethodSetIdentifier, Args: []any{"customer_name", "bar"}},
		{Method: adapters.MethodSetCustomerFullName, Args: []any{"bar"}},
		{Method: adapters.MethodSetCustomerFirstName, Args: []any{"bar"}},
		{Method: adapters.MethodSetCustomerLastName, Args: []any{"foo"}},
		{Method: adapters.MethodSetProfileAttribute, Args: []any{"custom", "qaz", scope}},
		{Method: adapters.MethodSetProfileAttribute, Args: []any{"email", "baz", scope}},
		{Method: adapters.MethodSetProfileAttribute, Args: []any{"firstName", "bar", scope}},
		{Method: adapters.MethodSetProfileAttribute, Args: []any{"lastName", "foo", scope}},
		{Method: adapters.MethodSetProfileAttribute, Args: []any{"name", "bar", scope}},
		{Method: adapters.MethodSetProfileAttribute, Args: []any{"userId", "foo", scope}},
	}, client.Calls())
}

func TestIntegration_IdentifyWithCustomDimensions(t *testing.T) {
	integration, client := newTestIntegration(t, Settings{
		AppKey:     "foo",
		Dimensions: DimensionMap{"foo": 1},
	}, nil)

	integration.Identify(IdentifyEvent{
		UserID: "bar",
		Traits: Traits{"userId": "bar", "foo": "baz"},
	})

	scope := adapters.ProfileScopeApplication
	assert.Equal(t, []adapters.Call{
		{Method: adapters.MethodSetCustomerID, Args: []any{"bar"}},
		{Method: adapters.MethodSetCustomDimension, Args: []any{1, "baz"}},
		{Method: adapters.MethodSetProfileAttribute, Args: []any{"foo", "baz", scope}},
		{Method: adapters.MethodSetProfileAttribute, Args: []any{"userId", "bar", scope}},
	}, client.Calls())
}

func TestIntegration_IdentifyOrganizationScope(t *testing.T) {
	integration, client := newTestIntegration(t, Settings{AppKey: "foo", OrganizationScope: true}, nil)

	integration.Identify(IdentifyEvent{Traits: Traits{"a": 1, "b": true, "c": 2.5, "d": nil}})

	attrs := client.CallsTo(adapters.MethodSetProfileAttribute)
	require.Len(t, attrs, 4)
	for _, call := range attrs {
		assert.Equal(t, adapters.ProfileScopeOrganization, call.Args[2])
	}
	assert.Equal(t, []any{"a", "1", adapters.ProfileScopeOrganization}, attrs[0].Args)
	assert.Equal(t, []any{"b", "true", adapters.ProfileScopeOrganization}, attrs[1].Args)
	assert.Equal(t, []any{"c", "2.5", adapters.ProfileScopeOrganization}, attrs[2].Args)
	assert.Equal(t, []any{"d", "null", adapters.ProfileScopeOrganization}, attrs[3].Args)
	assert.Zero(t, client.Count(adapters.MethodSetCustomerID))
}

func TestIntegration_IdentifySkipsEmptyReservedTraits(t *testing.T) {
	integration, client := newTestIntegration(t, Settings{AppKey: "foo"}, nil)

	integration.Identify(IdentifyEvent{Traits: Traits{"email": "", "name": ""}})

	assert.Zero(t, client.Count(adapters.MethodSetIdentifier))
	assert.Zero(t, client.Count(adapters.MethodSetCustomerEmail))
	assert.Zero(t, client.Count(adapters.MethodSetCustomerFullName))
	assert.Equal(t, 2, client.Count(adapters.MethodSetProfileAttribute))
}

func TestIntegration_IdentifyWithLocation(t *testing.T) {
	integration, client := newTestIntegration(t, Settings{AppKey: "foo"}, nil)

	integration.Identify(IdentifyEvent{
		UserID:  "foo",
		Context: EventContext{Location: &LocationContext{Latitude: 35.7, Longitude: 51.4, Speed: 3.5}},
	})

	assert.Equal(t, adapters.Call{
		Method: adapters.MethodSetLocation,
		Args: []any{adapters.Location{
			Provider:  "Segment",
			Latitude:  35.7,
			Longitude: 51.4,
			Speed:     3.5,
		}},
	}, client.Calls()[0])
	assert.Equal(t, adapters.MethodSetCustomerID, client.Calls()[1].Method)
}

func TestIntegration_Group(t *testing.T) {
	integration, client := newTestIntegration(t, Settings{AppKey: "foo", Dimensions: DimensionMap{"plan": 2}}, nil)

	integration.Group(GroupEvent{})
	integration.Group(GroupEvent{GroupID: "g1", Traits: Traits{"plan": "enterprise"}})

	assert.Empty(t, client.Calls())
}

func TestIntegration_Screen(t *testing.T) {
	integration, client := newTestIntegration(t, Settings{AppKey: "foo", Dimensions: DimensionMap{"foo": 1}}, nil)

	integration.Screen(ScreenEvent{Category: "foo", Name: "bar"})
	integration.Screen(ScreenEvent{Name: "baz"})
	integration.Screen(ScreenEvent{Category: "qux"})

	assert.Equal(t, []adapters.Call{
		{Method: adapters.MethodTagScreen, Args: []any{"bar"}},
		{Method: adapters.MethodTagScreen, Args: []any{"baz"}},
		{Method: adapters.MethodTagScreen, Args: []any{"qux"}},
	}, client.Calls())
}

func TestIntegration_ScreenWithLocation(t *testing.T) {
	integration, client := newTestIntegration(t, Settings{AppKey: "foo"}, nil)

	integration.Screen(ScreenEvent{Name: "home", Context: EventContext{Location: &LocationContext{Latitude: 1, Longitude: 2}}})

	assert.Equal(t, []string{adapters.MethodSetLocation, adapters.MethodTagScreen}, client.Methods())
}

func TestIntegration_Track(t *testing.T) {
	integration, client := newTestIntegration(t, Settings{AppKey: "foo"}, nil)

	integration.Track(TrackEvent{Event: "foo"})

	assert.Equal(t, []adapters.Call{
		{Method: adapters.MethodTagEvent, Args: []any{"foo", map[string]string{}}},
	}, client.Calls())
}

func TestIntegration_TrackWithRevenue(t *testing.T) {
	tests := []struct {
		name    string
		revenue any
		cents   int64
	}{
		{"integer", 20, 2000},
		{"float", 20.0, 2000},
		{"truncates toward zero", 19.999, 1999},
		{"negative truncates toward zero", -1.005, -100},
		{"numeric string", "12.5", 1250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			integration, client := newTestIntegration(t, Settings{AppKey: "foo"}, nil)
			props := Properties{"revenue": tt.revenue}

			integration.Track(TrackEvent{Event: "bar", Properties: props})

			assert.Equal(t, []adapters.Call{
				{Method: adapters.MethodTagEventWithRevenue, Args: []any{"bar", props.ToStringMap(), tt.cents}},
			}, client.Calls())
		})
	}
}

func TestIntegration_TrackWithoutRevenue(t *testing.T) {
	tests := []struct {
		name  string
		props Properties
	}{
		{"absent", Properties{"sku": "a"}},
		{"zero", Properties{"revenue": 0}},
		{"below one cent", Properties{"revenue": 0.009}},
		{"not numeric", Properties{"revenue": "free"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			integration, client := newTestIntegration(t, Settings{AppKey: "foo"}, nil)

			integration.Track(TrackEvent{Event: "bar", Properties: tt.props})

			assert.Equal(t, []adapters.Call{
				{Method: adapters.MethodTagEvent, Args: []any{"bar", tt.props.ToStringMap()}},
			}, client.Calls())
		})
	}
}

func TestIntegration_TrackWithCustomDimensions(t *testing.T) {
	integration, client := newTestIntegration(t, Settings{AppKey: "foo", Dimensions: DimensionMap{"foo": 9}}, nil)

	props := Properties{"foo": 1}
	integration.Track(TrackEvent{Event: "bar", Properties: props})

	assert.Equal(t, []adapters.Call{
		{Method: adapters.MethodTagEvent, Args: []any{"bar", map[string]string{"foo": "1"}}},
		{Method: adapters.MethodSetCustomDimension, Args: []any{9, "1"}},
	}, client.Calls())
}

func TestIntegration_CustomDimensionResolution(t *testing.T) {
	integration, client := newTestIntegration(t, Settings{
		AppKey: "foo",
		Dimensions: DimensionMap{
			"plan":   3,
			"tier":   "7",
			"bogus":  "not-a-slot",
			"ratio":  4.9,
			"absent": 5,
		},
	}, nil)

	integration.Track(TrackEvent{Event: "e", Properties: Properties{
		"plan":  "gold",
		"tier":  2,
		"bogus": "x",
		"ratio": 0.5,
		"other": "ignored",
	}})

	assert.Equal(t, []adapters.Call{
		{Method: adapters.MethodSetCustomDimension, Args: []any{0, "x"}},
		{Method: adapters.MethodSetCustomDimension, Args: []any{3, "gold"}},
		{Method: adapters.MethodSetCustomDimension, Args: []any{4, "0.5"}},
		{Method: adapters.MethodSetCustomDimension, Args: []any{7, "2"}},
	}, client.CallsTo(adapters.MethodSetCustomDimension))
}

func TestIntegration_TrackWithLocation(t *testing.T) {
	integration, client := newTestIntegration(t, Settings{AppKey: "foo"}, nil)

	integration.Track(TrackEvent{Event: "e", Context: EventContext{Location: &LocationContext{Speed: 12.25}}})

	require.Equal(t, []string{adapters.MethodSetLocation, adapters.MethodTagEvent}, client.Methods())
	loc := client.Calls()[0].Args[0].(adapters.Location)
	assert.Equal(t, float32(12.25), loc.Speed)
}
