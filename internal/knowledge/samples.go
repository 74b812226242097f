package knowledge

import "convoscore/internal/domain"

// SampleArticles returns the built-in demonstration knowledge base used when
// no article file is configured.
func SampleArticles() []domain.Article {
	return []domain.Article{
		{
			ID:          "kb_001",
			Title:       "How to Reset Your Password",
			Content:     "To reset your password, follow these steps: 1. Go to the login page 2. Click 'Forgot Password' 3. Enter your email address 4. Check your email for reset instructions 5. Follow the link in the email 6. Create a new strong password. If you don't receive the email within 10 minutes, check your spam folder or contact support.",
			Category:    "account_management",
			Tags:        []string{"password", "reset", "login", "account"},
			Priority:    "high",
			LastUpdated: "2024-01-15",
		},
		{
			ID:          "kb_002",
			Title:       "Billing and Payment Issues",
			Content:     "Common billing issues and solutions: Payment failed - Check if your card details are correct and up to date. Unexpected charges - Review your subscription plan and any add-ons. Refund requests - Contact support within 30 days with your order number. Payment methods - We accept major credit cards, PayPal, and bank transfers. For enterprise customers, we also offer invoicing options.",
			Category:    "billing",
			Tags:        []string{"billing", "payment", "refund", "subscription", "charges"},
			Priority:    "high",
			LastUpdated: "2024-01-20",
		},
		{
			ID:          "kb_003",
			Title:       "Account Suspension and Recovery",
			Content:     "If your account has been suspended: 1. Check your email for suspension notification 2. Common reasons include policy violations, payment issues, or security concerns 3. Contact support immediately with your account details 4. Provide any requested documentation 5. Follow the recovery process outlined in our email 6. Account recovery typically takes 2-5 business days. Prevent future suspensions by keeping your account information current and following our terms of service.",
			Category:    "account_management",
			Tags:        []string{"suspension", "account", "recovery", "policy", "security"},
			Priority:    "critical",
			LastUpdated: "2024-01-18",
		},
		{
			ID:          "kb_004",
			Title:       "Technical Support and Troubleshooting",
			Content:     "Basic troubleshooting steps: 1. Clear your browser cache and cookies 2. Try using an incognito/private browser window 3. Disable browser extensions temporarily 4. Check your internet connection 5. Try accessing from a different device or browser 6. Update your browser to the latest version. If problems persist, contact technical support with details about your device, browser, and the specific error you're experiencing.",
			Category:    "technical_support",
			Tags:        []string{"troubleshooting", "technical", "browser", "cache", "error"},
			Priority:    "medium",
			LastUpdated: "2024-01-10",
		},
		{
			ID:          "kb_005",
			Title:       "Privacy and Data Protection",
			Content:     "We take your privacy seriously. Your data protection rights include: Access - Request copies of your personal data. Correction - Request correction of inaccurate data. Deletion - Request deletion of your data (right to be forgotten). Portability - Request transfer of your data. We use industry-standard encryption and security measures. Data is stored securely and never sold to third parties. For privacy concerns or data requests, contact our privacy team at privacy@company.com.",
			Category:    "privacy",
			Tags:        []string{"privacy", "data", "security", "GDPR", "rights"},
			Priority:    "medium",
			LastUpdated: "2024-01-12",
		},
		{
			ID:          "kb_006",
			Title:       "Subscription Management and Plans",
			Content:     "Manage your subscription: Upgrade/Downgrade - Changes take effect at next billing cycle. Cancel subscription - You can cancel anytime; access continues until period end. Plan comparison - Basic ($9/month), Pro ($19/month), Enterprise (custom pricing). Features include: Basic (core features), Pro (advanced features + priority support), Enterprise (all features + dedicated support + custom integrations). Contact sales for enterprise pricing and custom solutions.",
			Category:    "subscription",
			Tags:        []string{"subscription", "plans", "upgrade", "cancel", "pricing"},
			Priority:    "high",
			LastUpdated: "2024-01-25",
		},
		{
			ID:          "kb_007",
			Title:       "API Documentation and Integration",
			Content:     "API integration guide: 1. Obtain API key from your dashboard 2. Authentication uses Bearer token in headers 3. Base URL: https://api.example.com/v1 4. Rate limits: 1000 requests/hour for Basic, 5000/hour for Pro 5. Key endpoints: /users, /data, /analytics 6. Response format is JSON with standard HTTP status codes 7. SDKs available for Python, JavaScript, and PHP. For technical integration support, contact our developer support team.",
			Category:    "technical_support",
			Tags:        []string{"API", "integration", "developer", "authentication", "documentation"},
			Priority:    "medium",
			LastUpdated: "2024-01-22",
		},
		{
			ID:          "kb_008",
			Title:       "Refund and Cancellation Policy",
			Content:     "Refund policy: 30-day money-back guarantee for new subscriptions. Cancellation policy: Cancel anytime, no cancellation fees. Refund process: 1. Contact support within 30 days 2. Provide order number and reason 3. Refunds processed within 5-7 business days 4. Refunds issued to original payment method. Exceptions: Setup fees for enterprise plans are non-refundable. Partial refunds available for annual plans if cancelled within first 30 days.",
			Category:    "billing",
			Tags:        []string{"refund", "cancellation", "policy", "money-back", "guarantee"},
			Priority:    "high",
			LastUpdated: "2024-01-20",
		},
		{
			ID:          "kb_009",
			Title:       "Security Best Practices",
			Content:     "Keep your account secure: 1. Use strong, unique passwords 2. Enable two-factor authentication (2FA) 3. Regularly review account activity 4. Don't share login credentials 5. Log out from shared devices 6. Report suspicious activity immediately 7. Keep contact information updated 8. Use official company communications only. If you suspect account compromise, change your password immediately and contact security team at security@company.com.",
			Category:    "security",
			Tags:        []string{"security", "password", "2FA", "best-practices", "account-safety"},
			Priority:    "high",
			LastUpdated: "2024-01-15",
		},
		{
			ID:          "kb_010",
			Title:       "Contact Information and Support Hours",
			Content:     "Get support when you need it: Email support: support@company.com (24/7). Live chat: Available Mon-Fri 9AM-6PM EST. Phone support: +1-800-123-4567 (Pro and Enterprise only). Emergency support: For critical issues, mark emails as 'URGENT'. Response times: Basic (48 hours), Pro (24 hours), Enterprise (4 hours). Self-service: Check our knowledge base first for quick answers. Status page: status.company.com for service updates.",
			Category:    "support",
			Tags:        []string{"contact", "support", "hours", "email", "phone", "chat"},
			Priority:    "critical",
			LastUpdated: "2024-01-28",
		},
	}
}
