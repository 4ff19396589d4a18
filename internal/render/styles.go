package render

// PlaceholderAnchor is the stylesheet comment the placeholder styles are
// inserted in front of.
const PlaceholderAnchor = "/* Memorial Theme - Elegant & Delicate Style (Light Silver) */"

// PlaceholderCSS styles the coming-soon cards. It is inserted once.
const PlaceholderCSS = `        .coming-soon-card {
            background: rgba(255, 255, 255, 0.08);
            border: 1px dashed rgba(255, 255, 255, 0.35);
            border-radius: 16px;
            padding: 40px 20px;
            display: flex;
            flex-direction: column;
            align-items: center;
            justify-content: center;
            gap: 16px;
            text-align: center;
        }

        .coming-soon-card .coming-soon-label {
            font-size: 18px;
            letter-spacing: 0.12em;
            text-transform: uppercase;
            color: var(--fg-primary);
        }

        .coming-soon-card .product-price {
            font-size: 16px;
            letter-spacing: 0.08em;
            color: var(--fg-secondary);
        }

        .memorial-theme .coming-soon-card {
            background: rgba(240, 244, 249, 0.35);
            border-color: rgba(184, 197, 214, 0.5);
        }

        .memorial-theme .coming-soon-card .coming-soon-label {
            color: #4B5563;
        }

        .memorial-theme .coming-soon-card .product-price {
            color: #6B7280;
        }
`
