package web

import (
	"net/url"
	"time"

	"multipay/internal/payments"
	"multipay/internal/payments/workers"
)

// Phase is where a view is in its load cycle. Every data-backed view renders
// exactly one phase.
type Phase string

const (
	PhaseLoading  Phase = "loading"
	PhaseFailed   Phase = "failed"
	PhaseEmpty    Phase = "empty"
	PhaseNotFound Phase = "not_found"
	PhaseReady    Phase = "ready"
)

const (
	listSkeletonRows   = 5
	detailSkeletonCols = 4
)

const (
	MsgListFailed    = "Erro ao carregar pagamentos"
	MsgDetailFailed  = "Erro ao carregar pagamento"
	MsgCreateFailed  = "Erro ao criar pagamento"
	MsgConnection    = "Erro de conexão. Verifique se o servidor está rodando."
	MsgCreated       = "Pagamento criado com sucesso!"
	MsgDuplicate     = "Este pagamento já foi enviado."
	MsgSummaryFailed = "Erro ao carregar resumo"
)

type NavLink struct {
	Label  string
	Route  string
	Icon   string
	Active bool
}

// Layout is the chrome shared by every page: header and sidebar.
type Layout struct {
	Title          string
	ShowNewPayment bool
	General        []NavLink
	Config         []NavLink
}

var (
	generalNav = []NavLink{
		{Label: "Dashboard", Route: "/", Icon: "▦"},
		{Label: "Pagamentos", Route: "/payments", Icon: "▭"},
		{Label: "Novo pagamento", Route: "/payments/new", Icon: "+"},
	}
	configNav = []NavLink{
		{Label: "Tenants", Route: "/tenants", Icon: "▤"},
		{Label: "Chaves de API", Route: "/api-keys", Icon: "⚿"},
	}
)

func NewLayout(title, path string, showNewPayment bool) Layout {
	return Layout{
		Title:          title,
		ShowNewPayment: showNewPayment,
		General:        markActive(generalNav, path),
		Config:         markActive(configNav, path),
	}
}

func markActive(links []NavLink, path string) []NavLink {
	out := make([]NavLink, len(links))
	for i, l := range links {
		l.Active = l.Route == path
		out[i] = l
	}
	return out
}

// Page is the data handed to a full page template.
type Page struct {
	Layout Layout
	Body   any
}

type PaymentRow struct {
	ID                string
	CreatedAt         string
	Amount            string
	Currency          string
	StatusLabel       string
	StatusTone        string
	ProviderPaymentID string
	DetailURL         string
}

type ListView struct {
	Phase        Phase
	FragmentURL  string
	Error        string
	Rows         []PaymentRow
	SkeletonRows []int
}

func ListLoading(fragmentURL string) ListView {
	return ListView{Phase: PhaseLoading, FragmentURL: fragmentURL, SkeletonRows: make([]int, listSkeletonRows)}
}

func ListFailed() ListView {
	return ListView{Phase: PhaseFailed, Error: MsgListFailed}
}

func ListLoaded(list []payments.Payment, loc *time.Location) ListView {
	if len(list) == 0 {
		return ListView{Phase: PhaseEmpty}
	}

	rows := make([]PaymentRow, 0, len(list))
	for _, p := range list {
		rows = append(rows, PaymentRow{
			ID:                p.ID,
			CreatedAt:         payments.FormatDateTime(p.CreatedAt, loc),
			Amount:            payments.FormatAmount(p.Amount, p.Currency),
			Currency:          p.Currency,
			StatusLabel:       p.Status.Label(),
			StatusTone:        string(p.Status.Tone()),
			ProviderPaymentID: p.ProviderPaymentID,
			DetailURL:         DetailURL(p.ID),
		})
	}
	return ListView{Phase: PhaseReady, Rows: rows}
}

type DetailView struct {
	Phase        Phase
	FragmentURL  string
	Error        string
	SkeletonCols []int

	ID                string
	Amount            string
	Currency          string
	CreatedAt         string
	StatusLabel       string
	StatusTone        string
	ProviderStatus    string
	ProviderPaymentID string
	TenantName        string
	HasTenant         bool
}

func DetailLoading(fragmentURL string) DetailView {
	return DetailView{Phase: PhaseLoading, FragmentURL: fragmentURL, SkeletonCols: make([]int, detailSkeletonCols)}
}

func DetailFailed() DetailView {
	return DetailView{Phase: PhaseFailed, Error: MsgDetailFailed}
}

func DetailNotFound() DetailView {
	return DetailView{Phase: PhaseNotFound}
}

func DetailLoaded(p *payments.Payment, loc *time.Location) DetailView {
	if p == nil {
		return DetailNotFound()
	}
	v := DetailView{
		Phase:             PhaseReady,
		ID:                p.ID,
		Amount:            payments.FormatAmount(p.Amount, p.Currency),
		Currency:          p.Currency,
		CreatedAt:         payments.FormatDate(p.CreatedAt, loc),
		StatusLabel:       p.Status.Label(),
		StatusTone:        string(p.Status.Tone()),
		ProviderStatus:    p.Status.ProviderStatus(),
		ProviderPaymentID: p.ProviderPaymentID,
	}
	if p.Tenant != nil {
		v.HasTenant = true
		v.TenantName = p.Tenant.Name
	}
	return v
}

// Banner is the form-level feedback shown above the creation form.
type Banner struct {
	Success bool
	Title   string
	Message string
}

func SuccessBanner() *Banner {
	return &Banner{Success: true, Title: "Sucesso!", Message: MsgCreated}
}

func ErrorBanner(msg string) *Banner {
	return &Banner{Title: "Erro", Message: msg}
}

type FormView struct {
	Form       payments.CreateForm
	Token      string
	Errors     map[string]string
	Banner     *Banner
	Currencies []payments.Option
	Methods    []payments.Option
}

func NewFormView(form payments.CreateForm, token string) FormView {
	return FormView{
		Form:       form,
		Token:      token,
		Errors:     map[string]string{},
		Currencies: payments.Currencies,
		Methods:    payments.PaymentMethods,
	}
}

type StatusCount struct {
	Label string
	Tone  string
	Count int64
}

type CurrencyTotal struct {
	Currency string
	Amount   string
	Count    int64
}

type ProviderStatus struct {
	Checked   bool
	Reachable bool
	Latency   string
	CheckedAt string
	Error     string
}

func NewProviderStatus(h workers.APIHealth, loc *time.Location) ProviderStatus {
	ps := ProviderStatus{
		Checked:   h.Checked,
		Reachable: h.Reachable,
		Error:     h.Error,
	}
	if h.Checked {
		ps.Latency = h.Latency.Round(time.Millisecond).String()
		ps.CheckedAt = payments.FormatDateTime(h.CheckedAt, loc)
	}
	return ps
}

type DashboardView struct {
	Phase       Phase
	FragmentURL string
	Error       string
	Provider    ProviderStatus
	Total       int64
	ByStatus    []StatusCount
	Totals      []CurrencyTotal
}

func DashboardLoading(fragmentURL string, provider ProviderStatus) DashboardView {
	return DashboardView{Phase: PhaseLoading, FragmentURL: fragmentURL, Provider: provider}
}

func DashboardFailed(provider ProviderStatus) DashboardView {
	return DashboardView{Phase: PhaseFailed, Error: MsgSummaryFailed, Provider: provider}
}

func DashboardLoaded(s payments.Summary, provider ProviderStatus) DashboardView {
	v := DashboardView{Phase: PhaseReady, Provider: provider, Total: s.TotalPayments}
	if s.TotalPayments == 0 {
		v.Phase = PhaseEmpty
	}
	for _, bs := range s.ByStatus {
		v.ByStatus = append(v.ByStatus, StatusCount{
			Label: bs.Status.Label(),
			Tone:  string(bs.Status.Tone()),
			Count: bs.Count,
		})
	}
	for _, t := range s.Succeeded {
		v.Totals = append(v.Totals, CurrencyTotal{
			Currency: t.Currency,
			Amount:   payments.FormatAmount(t.Amount, t.Currency),
			Count:    t.Count,
		})
	}
	return v
}

func DetailURL(id string) string {
	return "/payments/" + url.PathEscape(id)
}
