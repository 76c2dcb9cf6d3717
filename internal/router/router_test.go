package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"pet-marketplace/internal/adapters/auth/local"
	mem "pet-marketplace/internal/adapters/storage/memory"
	"pet-marketplace/internal/middleware"
	"pet-marketplace/internal/platform/metrics"
	"pet-marketplace/internal/router"
)

func newServer(t *testing.T, mutate func(*router.Options)) *httptest.Server {
	t.Helper()

	store := mem.NewKVStore()
	idp, err := local.NewProvider(store, local.Config{Secret: "test-secret", BcryptCost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("local provider: %v", err)
	}

	opts := router.Options{
		Store:        store,
		Identity:     idp,
		AuthVerifier: idp,
	}
	if mutate != nil {
		mutate(&opts)
	}

	app, err := router.New(opts)
	if err != nil {
		t.Fatalf("router: %v", err)
	}
	ts := httptest.NewServer(app.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_Health(t *testing.T) {
	ts := newServer(t, nil)

	st, body := doReq(t, ts.URL, "GET", "/health", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d", st)
	}
	if strings.TrimSpace(string(body)) != `{"status":"ok"}` {
		t.Fatalf("unexpected body %s", string(body))
	}
}

func TestHTTP_EndToEnd_ListingLifecycle(t *testing.T) {
	ts := newServer(t, nil)

	sellerID, sellerToken := signUpAndIn(t, ts.URL, "seller@pets.test", "Sally", "")
	_, buyerToken := signUpAndIn(t, ts.URL, "buyer@pets.test", "Bob", "")

	// 1) Anónimo no puede crear
	{
		st, body := doReq(t, ts.URL, "POST", "/pets", "", map[string]any{"name": "Rex"})
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 anonymous create, got %d body=%s", st, string(body))
		}
	}

	// 2) Seller crea aviso; price como número y age como string se preservan
	petID := ""
	{
		st, body := doReq(t, ts.URL, "POST", "/pets", sellerToken, map[string]any{
			"name":     "Rex",
			"breed":    "Labrador",
			"category": "Dogs",
			"age":      "2 years",
			"price":    1500,
			"images":   []string{"a.jpg"},
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create, got %d body=%s", st, string(body))
		}
		var out struct {
			Pet map[string]any `json:"pet"`
		}
		decode(t, body, &out)
		petID, _ = out.Pet["id"].(string)
		if petID == "" {
			t.Fatalf("missing pet id in %s", string(body))
		}
		if out.Pet["ownerId"] != sellerID || out.Pet["status"] != "active" {
			t.Fatalf("unexpected pet %v", out.Pet)
		}
		if out.Pet["price"] != float64(1500) || out.Pet["age"] != "2 years" {
			t.Fatalf("price/age kinds not preserved: %v %v", out.Pet["price"], out.Pet["age"])
		}
	}

	// 3) Público: list + detalle con ownerInfo
	{
		st, body := doReq(t, ts.URL, "GET", "/pets?category=dogs&search=labr", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list, got %d", st)
		}
		var out struct {
			Pets []map[string]any `json:"pets"`
		}
		decode(t, body, &out)
		if len(out.Pets) != 1 || out.Pets[0]["id"] != petID {
			t.Fatalf("unexpected list %s", string(body))
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/"+petID, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 detail, got %d", st)
		}
		var out struct {
			Pet struct {
				OwnerInfo *struct {
					Name string `json:"name"`
				} `json:"ownerInfo"`
			} `json:"pet"`
		}
		decode(t, body, &out)
		if out.Pet.OwnerInfo == nil || out.Pet.OwnerInfo.Name != "Sally" {
			t.Fatalf("expected ownerInfo, got %s", string(body))
		}
	}

	// 4) Otro usuario no puede editar ni borrar
	{
		st, _ := doReq(t, ts.URL, "PUT", "/pets/"+petID, buyerToken, map[string]any{"price": 1})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 update by non-owner, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "DELETE", "/pets/"+petID, buyerToken, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 delete by non-owner, got %d", st)
		}
	}

	// 5) Owner marca vendido; status inválido es 400
	{
		st, body := doReq(t, ts.URL, "PUT", "/pets/"+petID, sellerToken, map[string]any{"status": "sold"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 update, got %d body=%s", st, string(body))
		}
		st, _ = doReq(t, ts.URL, "PUT", "/pets/"+petID, sellerToken, map[string]any{"status": "gone"})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 invalid status, got %d", st)
		}
	}

	// 6) Owner borra; después 404
	{
		st, body := doReq(t, ts.URL, "DELETE", "/pets/"+petID, sellerToken, nil)
		if st != http.StatusOK || !strings.Contains(string(body), "Pet listing deleted successfully") {
			t.Fatalf("expected 200 delete, got %d body=%s", st, string(body))
		}
		st, body = doReq(t, ts.URL, "GET", "/pets/"+petID, "", nil)
		if st != http.StatusNotFound || !strings.Contains(string(body), "Pet not found") {
			t.Fatalf("expected 404 after delete, got %d body=%s", st, string(body))
		}
	}
}

func TestHTTP_Auth_Errors(t *testing.T) {
	ts := newServer(t, nil)

	dupID, dupToken := signUpAndIn(t, ts.URL, "dup@pets.test", "Dup", "")

	st, body := doReq(t, ts.URL, "GET", "/auth/me", dupToken, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 me, got %d body=%s", st, string(body))
	}
	var me struct {
		User struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
	}
	decode(t, body, &me)
	if me.User.ID != dupID || me.User.Role != "user" {
		t.Fatalf("unexpected me %+v", me.User)
	}

	st, body = doReq(t, ts.URL, "POST", "/auth/signup", "", map[string]any{
		"email": "dup@pets.test", "password": "secret123", "name": "Dup",
	})
	if st != http.StatusBadRequest || !strings.Contains(string(body), "already registered") {
		t.Fatalf("expected 400 already registered, got %d body=%s", st, string(body))
	}

	st, _ = doReq(t, ts.URL, "POST", "/auth/signup", "", map[string]any{"email": "x@pets.test"})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 missing fields, got %d", st)
	}

	st, _ = doReq(t, ts.URL, "POST", "/auth/signin", "", map[string]any{
		"email": "dup@pets.test", "password": "wrong-password",
	})
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 bad credentials, got %d", st)
	}

	st, _ = doReq(t, ts.URL, "GET", "/auth/me", "not-a-token", nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 with invalid token, got %d", st)
	}
}

func TestHTTP_Messaging_ThreadAndConversations(t *testing.T) {
	ts := newServer(t, nil)

	aliceID, aliceToken := signUpAndIn(t, ts.URL, "alice@pets.test", "Alice", "")
	bobID, bobToken := signUpAndIn(t, ts.URL, "bob@pets.test", "Bob", "")

	send := func(token, to, content string) {
		t.Helper()
		st, body := doReq(t, ts.URL, "POST", "/messages", token, map[string]any{
			"petId": "pet-1", "recipientId": to, "content": content,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 send, got %d body=%s", st, string(body))
		}
	}

	send(aliceToken, bobID, "hi")
	send(bobToken, aliceID, "hello back")

	// ambos lados ven el mismo hilo, en orden cronológico
	for _, tc := range []struct {
		token, other string
	}{{aliceToken, bobID}, {bobToken, aliceID}} {
		st, body := doReq(t, ts.URL, "GET", "/messages/"+tc.other, tc.token, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 thread, got %d", st)
		}
		var out struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		decode(t, body, &out)
		if len(out.Messages) != 2 || out.Messages[0].Content != "hi" || out.Messages[1].Content != "hello back" {
			t.Fatalf("unexpected thread %s", string(body))
		}
	}

	st, body := doReq(t, ts.URL, "GET", "/conversations", aliceToken, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 conversations, got %d", st)
	}
	var convs struct {
		Conversations []struct {
			OtherUserID string `json:"otherUserId"`
			OtherUser   struct {
				ID string `json:"id"`
			} `json:"otherUser"`
			LastMessage struct {
				Content string `json:"content"`
			} `json:"lastMessage"`
			UnreadCount int `json:"unreadCount"`
		} `json:"conversations"`
	}
	decode(t, body, &convs)
	if len(convs.Conversations) != 1 {
		t.Fatalf("expected 1 conversation, got %s", string(body))
	}
	c := convs.Conversations[0]
	if c.OtherUserID != bobID || c.OtherUser.ID != bobID || c.LastMessage.Content != "hello back" || c.UnreadCount != 0 {
		t.Fatalf("unexpected conversation %s", string(body))
	}

	// el id del otro participante viaja aunque no tenga perfil guardado
	send(aliceToken, "ghost-user", "anyone there?")
	st, body = doReq(t, ts.URL, "GET", "/conversations", aliceToken, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 conversations, got %d", st)
	}
	var raw struct {
		Conversations []map[string]any `json:"conversations"`
	}
	decode(t, body, &raw)
	found := false
	for _, conv := range raw.Conversations {
		if conv["otherUserId"] == "ghost-user" {
			found = conv["otherUser"] == nil
		}
	}
	if !found {
		t.Fatalf("expected ghost-user conversation with null otherUser, got %s", string(body))
	}

	st, _ = doReq(t, ts.URL, "POST", "/messages", aliceToken, map[string]any{
		"petId": "pet-1", "recipientId": "a:b", "content": "hi",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for recipient with ':', got %d", st)
	}

	st, _ = doReq(t, ts.URL, "POST", "/messages", aliceToken, map[string]any{"petId": "pet-1"})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 missing fields, got %d", st)
	}
}

func TestHTTP_AdminEndpoints(t *testing.T) {
	ts := newServer(t, nil)

	_, adminToken := signUpAndIn(t, ts.URL, "admin@pets.test", "Admin", "admin")
	_, userToken := signUpAndIn(t, ts.URL, "user@pets.test", "User", "")

	st, _ := doReq(t, ts.URL, "GET", "/admin/analytics", "", nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 anonymous analytics, got %d", st)
	}
	st, body := doReq(t, ts.URL, "GET", "/admin/analytics", userToken, nil)
	if st != http.StatusForbidden || !strings.Contains(string(body), "admin access required") {
		t.Fatalf("expected 403 for non-admin, got %d body=%s", st, string(body))
	}

	for _, price := range []any{100, "200"} {
		st, body = doReq(t, ts.URL, "POST", "/pets", userToken, map[string]any{
			"name": "P", "category": "Cats", "price": price,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create, got %d body=%s", st, string(body))
		}
	}

	st, body = doReq(t, ts.URL, "GET", "/admin/analytics", adminToken, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 analytics, got %d body=%s", st, string(body))
	}
	var rep struct {
		Stats struct {
			TotalListings  int `json:"totalListings"`
			ActiveListings int `json:"activeListings"`
			TotalUsers     int `json:"totalUsers"`
		} `json:"stats"`
		CategoryStats map[string]int  `json:"categoryStats"`
		MonthlyData   []map[string]any `json:"monthlyData"`
		RecentPets    []struct {
			OwnerName string `json:"ownerName"`
		} `json:"recentPets"`
	}
	decode(t, body, &rep)
	if rep.Stats.TotalListings != 2 || rep.Stats.ActiveListings != 2 || rep.Stats.TotalUsers != 2 {
		t.Fatalf("unexpected stats %s", string(body))
	}
	if rep.CategoryStats["Cats"] != 2 || len(rep.MonthlyData) != 6 {
		t.Fatalf("unexpected aggregates %s", string(body))
	}
	if len(rep.RecentPets) != 2 || rep.RecentPets[0].OwnerName != "User" {
		t.Fatalf("unexpected recent pets %s", string(body))
	}

	st, _ = doReq(t, ts.URL, "GET", "/admin/users", userToken, nil)
	if st != http.StatusForbidden {
		t.Fatalf("expected 403 listing users as non-admin, got %d", st)
	}
	st, body = doReq(t, ts.URL, "GET", "/admin/users", adminToken, nil)
	if st != http.StatusOK || !strings.Contains(string(body), "user@pets.test") {
		t.Fatalf("expected 200 users list, got %d body=%s", st, string(body))
	}
}

func TestHTTP_Seed_IsIdempotent(t *testing.T) {
	ts := newServer(t, func(o *router.Options) { o.SeedEndpoint = true })

	var first struct {
		Message  string   `json:"message"`
		Created  []string `json:"created"`
		Skipped  []string `json:"skipped"`
		Listings int      `json:"listings"`
	}
	st, body := doReq(t, ts.URL, "POST", "/seed", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 seed, got %d body=%s", st, string(body))
	}
	decode(t, body, &first)
	if first.Message != "Demo accounts created successfully" || len(first.Created) == 0 || first.Listings == 0 {
		t.Fatalf("unexpected first seed %s", string(body))
	}

	var second struct {
		Created  []string `json:"created"`
		Skipped  []string `json:"skipped"`
		Listings int      `json:"listings"`
	}
	_, body = doReq(t, ts.URL, "POST", "/seed", "", nil)
	decode(t, body, &second)
	if len(second.Created) != 0 || len(second.Skipped) != len(first.Created) || second.Listings != 0 {
		t.Fatalf("second seed must skip everything, got %s", string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/pets", "", nil)
	var list struct {
		Pets []any `json:"pets"`
	}
	decode(t, body, &list)
	if st != http.StatusOK || len(list.Pets) != first.Listings {
		t.Fatalf("expected %d seeded pets, got %s", first.Listings, string(body))
	}
}

func TestHTTP_SeedDisabledByDefault(t *testing.T) {
	ts := newServer(t, nil)

	st, _ := doReq(t, ts.URL, "POST", "/seed", "", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 when seed endpoint disabled, got %d", st)
	}
}

func TestHTTP_DevMode_DebugHeader(t *testing.T) {
	ts := newServer(t, func(o *router.Options) {
		o.Identity = nil
		o.AuthVerifier = nil
	})

	req, _ := http.NewRequest("POST", ts.URL+"/pets", strings.NewReader(`{"name":"Dev pet"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.DebugUserIDHeader, "dev-1")
	req.Header.Set(middleware.DebugUserEmailHeader, "dev@local")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, _ := io.ReadAll(res.Body)
	_ = res.Body.Close()

	if res.StatusCode != http.StatusCreated || !strings.Contains(string(body), `"ownerId":"dev-1"`) {
		t.Fatalf("expected 201 as dev user, got %d body=%s", res.StatusCode, string(body))
	}

	// sin proveedor de identidad el signup falla como error interno
	st, _ := doReq(t, ts.URL, "POST", "/auth/signup", "", map[string]any{
		"email": "x@pets.test", "password": "secret123", "name": "X",
	})
	if st != http.StatusInternalServerError {
		t.Fatalf("expected 500 without identity provider, got %d", st)
	}
}

func TestHTTP_MetricsAndSwagger(t *testing.T) {
	ts := newServer(t, func(o *router.Options) { o.Metrics = metrics.New() })

	doReq(t, ts.URL, "GET", "/health", "", nil)

	st, body := doReq(t, ts.URL, "GET", "/metrics", "", nil)
	if st != http.StatusOK || !strings.Contains(string(body), `route="/health"`) {
		t.Fatalf("expected health request in metrics, got %d", st)
	}

	st, body = doReq(t, ts.URL, "GET", "/swagger/doc.json", "", nil)
	if st != http.StatusOK || !strings.Contains(string(body), "/admin/analytics") {
		t.Fatalf("expected swagger doc, got %d", st)
	}
}

func TestHTTP_CORSPreflight(t *testing.T) {
	ts := newServer(t, func(o *router.Options) { o.AllowedOrigins = []string{"*"} })

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/pets", nil)
	req.Header.Set("Origin", "https://shop.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	_ = res.Body.Close()

	if res.StatusCode != http.StatusNoContent || res.Header.Get("Access-Control-Allow-Origin") == "" {
		t.Fatalf("unexpected preflight response %d %v", res.StatusCode, res.Header)
	}
}

// ---- helpers ----

func signUpAndIn(t *testing.T, baseURL, email, name, role string) (string, string) {
	t.Helper()

	payload := map[string]any{"email": email, "password": "secret123", "name": name}
	if role != "" {
		payload["role"] = role
	}
	st, body := doReq(t, baseURL, "POST", "/auth/signup", "", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 signup, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, baseURL, "POST", "/auth/signin", "", map[string]any{"email": email, "password": "secret123"})
	if st != http.StatusOK {
		t.Fatalf("expected 200 signin, got %d body=%s", st, string(body))
	}
	var out struct {
		AccessToken string `json:"accessToken"`
		User        struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	decode(t, body, &out)
	if out.AccessToken == "" || out.User.ID == "" {
		t.Fatalf("missing token or user id: %s", string(body))
	}
	return out.User.ID, out.AccessToken
}

func doReq(t *testing.T, baseURL, method, path, token string, payload any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	return res.StatusCode, body
}

func decode(t *testing.T, body []byte, out any) {
	t.Helper()
	if err := json.Unmarshal(body, out); err != nil {
		t.Fatalf("decode %s: %v", string(body), err)
	}
}

func TestHTTP_AuthRateLimit_IgnoresForwardedHeaders(t *testing.T) {
	signin := func(baseURL, forwardedFor string) int {
		t.Helper()
		req, err := http.NewRequest(http.MethodPost, baseURL+"/auth/signin", strings.NewReader(`{"email":"x@pets.test","password":"secret123"}`))
		if err != nil {
			t.Fatalf("new request: %v", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", forwardedFor)
		res, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("do: %v", err)
		}
		_ = res.Body.Close()
		return res.StatusCode
	}

	ts := newServer(t, func(o *router.Options) {
		o.RateLimitRPS = 0.001
		o.RateLimitBurst = 1
	})
	if st := signin(ts.URL, "198.51.100.1"); st == http.StatusTooManyRequests {
		t.Fatalf("first request must pass the limiter")
	}
	if st := signin(ts.URL, "198.51.100.2"); st != http.StatusTooManyRequests {
		t.Fatalf("rotating X-Forwarded-For must not reset the bucket, got %d", st)
	}

	trusted := newServer(t, func(o *router.Options) {
		o.RateLimitRPS = 0.001
		o.RateLimitBurst = 1
		o.TrustProxyHeaders = true
	})
	if st := signin(trusted.URL, "198.51.100.1"); st == http.StatusTooManyRequests {
		t.Fatalf("first request must pass the limiter")
	}
	if st := signin(trusted.URL, "198.51.100.2"); st == http.StatusTooManyRequests {
		t.Fatalf("behind a trusted proxy each forwarded client has its own bucket")
	}
}
