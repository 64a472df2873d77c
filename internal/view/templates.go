package view

const dashboardHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Tenancy Reconciliation</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            background: #f3f4f6;
            color: #111827;
            margin: 0;
        }
        .container {
            max-width: 1100px;
            margin: 0 auto;
            padding: 30px 20px;
        }
        h1 {
            font-size: 26px;
            margin-bottom: 4px;
        }
        .as-of {
            color: #6b7280;
            margin-top: 0;
        }
        .panels {
            display: grid;
            grid-template-columns: 1fr 1fr;
            gap: 20px;
        }
        .panel {
            background: white;
            border-radius: 8px;
            box-shadow: 0 1px 3px rgba(0,0,0,0.1);
            padding: 20px;
            margin-bottom: 20px;
        }
        .panel h2 {
            font-size: 18px;
            margin-top: 0;
        }
        form.upload {
            display: flex;
            gap: 10px;
            margin-bottom: 15px;
        }
        button[type="submit"] {
            background: #1d4ed8;
            color: white;
            border: none;
            border-radius: 5px;
            padding: 8px 16px;
            font-weight: bold;
            cursor: pointer;
        }
        button[type="submit"]:hover {
            background: #1e40af;
        }
        .stats {
            color: #374151;
            font-size: 14px;
        }
        .stats dt {
            float: left;
            clear: left;
            width: 180px;
            color: #6b7280;
        }
        .stats dd {
            margin: 0 0 4px 190px;
        }
        .error-box {
            background: #fef2f2;
            border: 1px solid #fecaca;
            border-radius: 5px;
            color: #991b1b;
            padding: 12px;
            font-size: 14px;
        }
        .error-box ul {
            margin: 6px 0 0;
            padding-left: 20px;
        }
        .empty {
            color: #9ca3af;
            font-size: 14px;
        }
        a.download {
            font-size: 14px;
        }
        table {
            width: 100%;
            border-collapse: collapse;
            font-size: 14px;
        }
        th, td {
            text-align: left;
            padding: 6px 10px;
            border-bottom: 1px solid #e5e7eb;
        }
        th {
            color: #6b7280;
            font-weight: 500;
        }
        .badge {
            border-radius: 4px;
            padding: 2px 8px;
            font-size: 12px;
            font-weight: bold;
        }
        .badge-ok {
            background: #dcfce7;
            color: #166534;
        }
        .badge-missing_columns, .badge-failed {
            background: #fee2e2;
            color: #991b1b;
        }
        .code-list {
            columns: 3;
            font-size: 14px;
            list-style: none;
            padding: 0;
        }
        .code-list li {
            margin: 2px 0;
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>Tenancy Reconciliation</h1>
        <p class="as-of">Reporting as of {{.AsOf}}</p>

        <div class="panels">
            <div class="panel">
                <h2>Contract Roster</h2>
                <form class="upload" method="POST" action="/upload/contracts" enctype="multipart/form-data">
                    <input type="file" name="file" accept=".csv,text/csv" required>
                    <button type="submit">Upload</button>
                </form>
                {{template "slot" .Contracts}}
                {{if .Contracts.Loaded}}<a class="download" href="/download/contracts.csv">Download normalized CSV</a>{{end}}
            </div>
            <div class="panel">
                <h2>Invoice Log</h2>
                <form class="upload" method="POST" action="/upload/invoices" enctype="multipart/form-data">
                    <input type="file" name="file" accept=".csv,text/csv" required>
                    <button type="submit">Upload</button>
                </form>
                {{template "slot" .Invoices}}
                {{if .Invoices.Loaded}}<a class="download" href="/download/invoices.csv">Download normalized CSV</a>{{end}}
            </div>
        </div>

        {{with .Reconciliation}}
        <div class="panel">
            <h2>Reconciliation</h2>
            <div class="panels">
                <div>
                    <h3>Matched ({{len .Matched}})</h3>
                    <ul class="code-list">
                        {{range .Matched}}<li><a href="/contract?code={{.}}">{{.}}</a></li>{{end}}
                    </ul>
                </div>
                <div>
                    <h3>Missing from invoices ({{len .MissingFromInvoices}})</h3>
                    <ul class="code-list">
                        {{range .MissingFromInvoices}}<li><a href="/contract?code={{.}}">{{.}}</a></li>{{end}}
                    </ul>
                    <h3>Unmatched invoices ({{len .UnmatchedInvoices}})</h3>
                    <ul class="code-list">
                        {{range .UnmatchedInvoices}}<li>{{.}}</li>{{end}}
                    </ul>
                </div>
            </div>
        </div>
        {{end}}

        {{if .Runs}}
        <div class="panel">
            <h2>Recent Uploads</h2>
            <table>
                <tr>
                    <th>Time</th>
                    <th>Table</th>
                    <th>File</th>
                    <th>Outcome</th>
                    <th>Records</th>
                    <th>Detail</th>
                </tr>
                {{range .Runs}}
                <tr>
                    <td>{{.CreatedAt}}</td>
                    <td>{{.TableKind}}</td>
                    <td>{{.Filename}}</td>
                    <td><span class="badge badge-{{.Outcome}}">{{.Outcome}}</span></td>
                    <td>{{.Records}}</td>
                    <td>{{.Detail}}</td>
                </tr>
                {{end}}
            </table>
        </div>
        {{end}}
    </div>
</body>
</html>

{{define "slot"}}
{{if .Failure}}
<div class="error-box">
    <strong>{{.Failure.Message}}</strong>
    {{if .Failure.Missing}}
    <div>Missing columns:</div>
    <ul>{{range .Failure.Missing}}<li>{{.}}</li>{{end}}</ul>
    {{end}}
    {{if .Failure.Present}}
    <div>Columns present:</div>
    <ul>{{range .Failure.Present}}<li>{{.}}</li>{{end}}</ul>
    {{end}}
</div>
{{else if .Loaded}}
<dl class="stats">
    <dt>File</dt><dd>{{.Filename}}</dd>
    <dt>Uploaded</dt><dd>{{.UploadedAt}}</dd>
    <dt>Input rows</dt><dd>{{.InputRows}}</dd>
    <dt>Records</dt><dd>{{.Records}}</dd>
    {{if .ShowFiltered}}<dt>Filtered by type</dt><dd>{{.FilteredByType}}</dd>{{end}}
    <dt>Code extraction failures</dt><dd>{{.ExtractionFailures}}</dd>
</dl>
{{else}}
<p class="empty">Nothing uploaded yet.</p>
{{end}}
{{end}}
`

const contractHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Contract {{.Code}}</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            background: #f3f4f6;
            color: #111827;
            margin: 0;
        }
        .container {
            max-width: 900px;
            margin: 0 auto;
            padding: 30px 20px;
        }
        h1 {
            font-size: 24px;
            margin-bottom: 4px;
        }
        .back {
            font-size: 14px;
        }
        .panel {
            background: white;
            border-radius: 8px;
            box-shadow: 0 1px 3px rgba(0,0,0,0.1);
            padding: 20px;
            margin-bottom: 20px;
        }
        .panel h2 {
            font-size: 18px;
            margin-top: 0;
        }
        dl.details {
            font-size: 14px;
        }
        dl.details dt {
            float: left;
            clear: left;
            width: 200px;
            color: #6b7280;
        }
        dl.details dd {
            margin: 0 0 4px 210px;
        }
        table {
            width: 100%;
            border-collapse: collapse;
            font-size: 14px;
        }
        th, td {
            text-align: left;
            padding: 6px 10px;
            border-bottom: 1px solid #e5e7eb;
        }
        th {
            color: #6b7280;
            font-weight: 500;
        }
        tr.missing td {
            background: #fef2f2;
            color: #991b1b;
        }
        .missing-months {
            background: #fef2f2;
            border: 1px solid #fecaca;
            border-radius: 5px;
            color: #991b1b;
            padding: 12px;
            font-size: 14px;
        }
        .all-covered {
            background: #dcfce7;
            border-radius: 5px;
            color: #166534;
            padding: 12px;
            font-size: 14px;
        }
    </style>
</head>
<body>
    <div class="container">
        <a class="back" href="/">&larr; Back to dashboard</a>
        <h1>Contract {{.Code}}</h1>

        <div class="panel">
            <h2>Details</h2>
            <dl class="details">
                <dt>Tenant</dt><dd>{{.Tenant}}</dd>
                <dt>Contract reference</dt><dd>{{.Reference}}</dd>
                <dt>Start date</dt><dd>{{.StartDate}}</dd>
                <dt>End date</dt><dd>{{.EndDate}}</dd>
                <dt>Installment amount</dt><dd>{{.InstallmentAmount}}</dd>
                <dt>No. of cheques</dt><dd>{{.NumberOfCheques}}</dd>
                <dt>Total value</dt><dd>{{.TotalValue}}</dd>
            </dl>
        </div>

        <div class="panel">
            <h2>Status as of {{.AsOf}}</h2>
            <dl class="details">
                <dt>Expected to date</dt><dd>{{.ExpectedToDate}}</dd>
                <dt>Actually invoiced</dt><dd>{{.ActualInvoiced}}</dd>
                <dt>Invoices for this code</dt><dd>{{.InvoiceCount}}</dd>
            </dl>
            {{if .MissingMonths}}
            <div class="missing-months">
                Past-due months with no invoice:
                {{range $i, $m := .MissingMonths}}{{if $i}}, {{end}}{{$m}}{{end}}
            </div>
            {{else}}
            <div class="all-covered">Every past-due month has an invoice.</div>
            {{end}}
        </div>

        <div class="panel">
            <h2>Payment Schedule</h2>
            <table>
                <tr>
                    <th>Month</th>
                    <th>Due</th>
                    <th>Amount</th>
                    <th>Status</th>
                </tr>
                {{range .Schedule}}
                <tr{{if .Missing}} class="missing"{{end}}>
                    <td>{{.Month}}</td>
                    <td>{{.Date}}</td>
                    <td>{{.Amount}}</td>
                    <td>{{.Status}}</td>
                </tr>
                {{end}}
            </table>
        </div>

        <div class="panel">
            <h2>Invoices</h2>
            {{if .Invoices}}
            <table>
                <tr>
                    <th>Date</th>
                    <th>Reference</th>
                    <th>Payer</th>
                    <th>Amount</th>
                </tr>
                {{range .Invoices}}
                <tr>
                    <td>{{.Date}}</td>
                    <td>{{.Reference}}</td>
                    <td>{{.Payer}}</td>
                    <td>{{.Amount}}</td>
                </tr>
                {{end}}
            </table>
            {{else}}
            <p>No invoices reference this contract code.</p>
            {{end}}
        </div>
    </div>
</body>
</html>
`
