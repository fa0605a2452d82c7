package taxonomy

import "github.com/Veraticus/ticket-triage/internal/model"

// DefaultConfig returns the built-in taxonomy tables for an insurance
// support desk. Any part of it can be overridden from a YAML file.
func DefaultConfig() Config {
	return Config{
		FallbackCategory: "Uncategorized",

		CommonRequests: []TierEntry{
			{
				Name:         "Aadhaar Card Update",
				CategoryPath: []string{"Service Request", "Aadhaar Card Update"},
				SOPKey:       "kyc_update",
				Keywords: KeywordSet{
					Primary:   []string{"aadhaar", "aadhar"},
					Secondary: []string{"update", "card"},
					Context:   []string{"kyc", "identity"},
				},
			},
			{
				Name:         "PAN Card Update",
				CategoryPath: []string{"Service Request", "PAN Card Update"},
				SOPKey:       "kyc_update",
				Keywords: KeywordSet{
					Primary:   []string{"pan card", "pan number"},
					Secondary: []string{"update", "correction"},
					Context:   []string{"kyc", "income tax"},
				},
			},
			{
				Name:         "Policy Copy Request",
				CategoryPath: []string{"Service Request", "Policy Copy"},
				SOPKey:       "customer_service",
				Keywords: KeywordSet{
					Primary:   []string{"policy copy", "policy document"},
					Secondary: []string{"duplicate", "download"},
					Context:   []string{"soft copy", "email me"},
				},
			},
			{
				Name:         "Payment Link Request",
				CategoryPath: []string{"Service Request", "Payment Link"},
				SOPKey:       "payment_support",
				Keywords: KeywordSet{
					Primary:   []string{"payment link"},
					Secondary: []string{"renewal", "pay online"},
					Context:   []string{"share", "send"},
				},
			},
			{
				Name:         "Contact Detail Update",
				CategoryPath: []string{"Service Request", "Contact Detail Update"},
				SOPKey:       "customer_service",
				Keywords: KeywordSet{
					Primary:   []string{"mobile number", "email id"},
					Secondary: []string{"update", "change"},
					Context:   []string{"register", "communication"},
				},
			},
		},

		SupportIssues: []TierEntry{
			{
				Name:         "Payment Failure",
				CategoryPath: []string{"Support Issue", "Payment Failure"},
				SOPKey:       "payment_support",
				Keywords: KeywordSet{
					Primary:   []string{"payment failed", "payment failure", "amount debited"},
					Secondary: []string{"transaction", "refund"},
					Context:   []string{"bank", "gateway"},
				},
			},
			{
				Name:         "Link Not Working",
				CategoryPath: []string{"Support Issue", "Link Not Working"},
				SOPKey:       "payment_support",
				Keywords: KeywordSet{
					Primary:   []string{"link not working", "link expired", "invalid link"},
					Secondary: []string{"error", "unable to open"},
					Context:   []string{"click", "browser"},
				},
			},
			{
				Name:         "Login Issue",
				CategoryPath: []string{"Support Issue", "Login Issue"},
				SOPKey:       "customer_service",
				Keywords: KeywordSet{
					Primary:   []string{"unable to login", "login failed", "cannot log in"},
					Secondary: []string{"password", "otp"},
					Context:   []string{"portal", "account"},
				},
			},
			{
				Name:         "App Issue",
				CategoryPath: []string{"Support Issue", "App Issue"},
				SOPKey:       "customer_service",
				Keywords: KeywordSet{
					Primary:   []string{"app crash", "app not working", "application error"},
					Secondary: []string{"mobile app", "reinstall"},
					Context:   []string{"android", "ios"},
				},
			},
		},

		Claims: []TierEntry{
			{
				Name:         "Motor Claim",
				CategoryPath: []string{"Claim", "Motor"},
				SOPKey:       "motor_claim",
				Keywords: KeywordSet{
					Primary:   []string{"claim"},
					Secondary: []string{"accident", "vehicle", "garage"},
					Context:   []string{"damage", "repair", "survey"},
				},
			},
			{
				Name:         "Health Claim",
				CategoryPath: []string{"Claim", "Health"},
				SOPKey:       "health_claim",
				Keywords: KeywordSet{
					Primary:   []string{"claim"},
					Secondary: []string{"hospital", "cashless", "treatment"},
					Context:   []string{"medical", "admission", "discharge"},
				},
			},
			{
				Name:         "Property Claim",
				CategoryPath: []string{"Claim", "Property"},
				SOPKey:       "customer_service",
				Keywords: KeywordSet{
					Primary:   []string{"claim"},
					Secondary: []string{"fire", "theft", "burglary"},
					Context:   []string{"property", "premises"},
				},
			},
		},

		Endorsements: []EndorsementLine{
			{
				Line:   "Motor",
				SOPKey: "endorsement",
				Financial: KeywordSet{
					Primary:   []string{"ncb", "no claim bonus"},
					Secondary: []string{"idv", "premium refund"},
					Context:   []string{"endorsement"},
				},
				NonFinancial: KeywordSet{
					Primary:   []string{"vehicle number", "registration number"},
					Secondary: []string{"rto", "ownership transfer"},
					Context:   []string{"correction"},
				},
				Misc: []string{"hypothecation", "chassis number", "engine number"},
			},
			{
				Line:   "Health",
				SOPKey: "endorsement",
				Financial: KeywordSet{
					Primary:   []string{"sum insured change"},
					Secondary: []string{"premium revision", "sum insured"},
					Context:   []string{"endorsement"},
				},
				NonFinancial: KeywordSet{
					Primary:   []string{"nominee"},
					Secondary: []string{"name correction", "date of birth"},
					Context:   []string{"member", "spelling"},
				},
				Misc: []string{"add member", "delete member", "port policy"},
			},
			{
				Line:   "Life",
				SOPKey: "endorsement",
				Financial: KeywordSet{
					Primary:   []string{"fund switch"},
					Secondary: []string{"premium redirection", "top up"},
					Context:   []string{"endorsement"},
				},
				NonFinancial: KeywordSet{
					Primary:   []string{"nominee change"},
					Secondary: []string{"address correction", "assignee"},
					Context:   []string{"policyholder"},
				},
				Misc: []string{"assignment", "revival"},
			},
		},

		Generic: []GenericEntry{
			{Keyword: "renewal", CategoryPath: []string{"Renewal"}},
			{Keyword: "cancellation", CategoryPath: []string{"Cancellation"}},
			{Keyword: "refund", CategoryPath: []string{"Refund"}},
			{Keyword: "quotation", CategoryPath: []string{"New Business", "Quotation"}},
			{Keyword: "commission", CategoryPath: []string{"Agent", "Commission"}},
		},

		Legacy: LegacyBuckets{
			Financial:  []string{"payment", "premium", "invoice", "amount", "cheque"},
			Technical:  []string{"error", "website", "portal", "login", "server"},
			Operations: []string{"branch", "office", "courier", "dispatch", "agent"},
		},

		Sources: []SourceConfig{
			{
				Source:   string(model.SourceCustomer),
				Keywords: []string{"awaiting your reply", "customer to revert", "share the documents", "customer confirmation", "revert from customer"},
				Patterns: []string{`waiting (for|on) (the )?customer`, `requested .* from (the )?customer`, `customer (has )?not (yet )?responded`},
			},
			{
				Source:   string(model.SourceInsurer),
				Keywords: []string{"insurance company", "insurer", "hdfc ergo", "icici lombard", "underwriter", "new india assurance"},
				Patterns: []string{`forwarded to .*insur`, `raised (with|to) (the )?insur`, `pending (with|from) (the )?insur`},
			},
			{
				Source:   string(model.SourceDealer),
				Keywords: []string{"dealer", "dealership", "showroom"},
				Patterns: []string{`pending (with|at) (the )?dealer`, `dealer (has )?to (confirm|share)`},
			},
			{
				Source:   string(model.SourceSurveyor),
				Keywords: []string{"surveyor", "survey report", "inspection"},
				Patterns: []string{`surveyor (visit|appointed|assigned)`, `awaiting (the )?survey report`},
			},
			{
				Source:   string(model.SourceGarage),
				Keywords: []string{"garage", "workshop", "repair estimate"},
				Patterns: []string{`vehicle (is )?(at|in) (the )?(garage|workshop)`, `estimate from (the )?garage`},
			},
			{
				Source:   string(model.SourceTechSupport),
				Keywords: []string{"tech team", "it team", "technical team", "production issue"},
				Patterns: []string{`escalated to (the )?(tech|it|technical) team`, `bug (has been )?reported`},
			},
		},

		StatusRouting: map[int]string{
			int(model.StatusNew):            string(model.SourceInternalTeam),
			int(model.StatusOpen):           string(model.SourceInternalTeam),
			int(model.StatusPending):        string(model.SourceCustomer),
			int(model.StatusResolved):       string(model.SourceInternalTeam),
			int(model.StatusClosed):         string(model.SourceInternalTeam),
			int(model.StatusWaitingOnChild): string(model.SourceInternalTeam),
			int(model.StatusChildTask):      string(model.SourceInternalTeam),
		},

		SOPs: map[string]SOPConfig{
			"motor_claim": {
				Name:     "Motor Claim",
				TATHours: 168,
				Steps: []string{
					"Initial Assessment",
					"Document Verification",
					"Survey Assignment",
					"Survey Report Review",
					"Claim Settlement",
					"Closure",
				},
			},
			"health_claim": {
				Name:     "Health Claim",
				TATHours: 120,
				Steps: []string{
					"Pre-authorization Review",
					"Medical Document Verification",
					"Treatment Approval",
					"Bill Verification",
					"Settlement Processing",
					"Closure",
				},
			},
			"policy_issuance": {
				Name:     "Policy Issuance",
				TATHours: 336,
				Steps: []string{
					"Application Review",
					"KYC Verification",
					"Medical Assessment",
					"Underwriting",
					"Policy Generation",
					"Dispatch",
				},
			},
			"customer_service": {
				Name:     "Customer Service",
				TATHours: 48,
				Steps: []string{
					"Query Analysis",
					"Information Gathering",
					"Solution Implementation",
					"Customer Communication",
					"Follow-up",
					"Resolution",
				},
			},
			"kyc_update": {
				Name:     "KYC Update",
				TATHours: 48,
				Steps: []string{
					"Document Collection",
					"Verification",
					"System Update",
					"Confirmation",
				},
			},
			"payment_support": {
				Name:     "Payment Support",
				TATHours: 24,
				Steps: []string{
					"Transaction Lookup",
					"Gateway Reconciliation",
					"Resolution or Refund",
					"Confirmation",
				},
			},
			"endorsement": {
				Name:     "Endorsement Processing",
				TATHours: 72,
				Steps: []string{
					"Request Validation",
					"Document Collection",
					"Insurer Submission",
					"Endorsement Issuance",
				},
			},
		},

		Matrices: []model.EscalationMatrix{
			{
				Category: "Claim",
				Levels: []model.EscalationLevel{
					{Level: 1, ThresholdHours: 6, Contact: "Claims Team Lead"},
					{Level: 2, ThresholdHours: 24, Contact: "Operations Manager"},
					{Level: 3, ThresholdHours: 48, Contact: "Head of Claims"},
				},
			},
			{
				Category: "Endorsement",
				Levels: []model.EscalationLevel{
					{Level: 1, ThresholdHours: 12, Contact: "Endorsement Desk Lead"},
					{Level: 2, ThresholdHours: 48, Contact: "Operations Manager"},
					{Level: 3, ThresholdHours: 96, Contact: "Head of Operations"},
				},
			},
			{
				Category: "Support Issue",
				Levels: []model.EscalationLevel{
					{Level: 1, ThresholdHours: 4, Contact: "Support Team Lead"},
					{Level: 2, ThresholdHours: 12, Contact: "Engineering On-call"},
					{Level: 3, ThresholdHours: 24, Contact: "Head of Support"},
				},
			},
			{
				Category: "Service Request",
				Levels: []model.EscalationLevel{
					{Level: 1, ThresholdHours: 24, Contact: "Service Desk Lead"},
					{Level: 2, ThresholdHours: 72, Contact: "Operations Manager"},
					{Level: 3, ThresholdHours: 120, Contact: "Head of Operations"},
				},
			},
			{
				Category: "default",
				Levels: []model.EscalationLevel{
					{Level: 1, ThresholdHours: 24, Contact: "Team Lead"},
					{Level: 2, ThresholdHours: 72, Contact: "Operations Manager"},
					{Level: 3, ThresholdHours: 168, Contact: "Head of Operations"},
				},
			},
		},

		PSUInsurers: []string{
			"new india assurance",
			"oriental insurance",
			"united india insurance",
			"national insurance",
		},

		ReminderLadderHours: []float64{72, 48, 48},
	}
}
